package product

import (
	"context"
	"strings"

	"github.com/casamais/casamais-backend/internal/repo"
	"github.com/casamais/casamais-backend/pkg/db/models"
	"github.com/casamais/casamais-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository owns product persistence and the margin recompute.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(tx)}
}

// Create inserts the product.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.DB(ctx).Create(product).Error
}

// FindByID loads the product, active or not.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindRecipe loads the recipe a product is costed from.
func (r *Repository) FindRecipe(ctx context.Context, id int64) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.DB(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// List returns products ordered by name plus the count of all matching rows.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]models.Product, int64, error) {
	scope := func(q *gorm.DB) *gorm.DB {
		if !filters.IncluirInativos {
			q = q.Where("ativo = ?", true)
		}
		if busca := strings.ToLower(strings.TrimSpace(filters.Busca)); busca != "" {
			q = q.Where("LOWER(nome) LIKE ?", "%"+busca+"%")
		}
		return q
	}

	var total int64
	if err := r.DB(ctx).Model(&models.Product{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	q := r.DB(ctx).Scopes(scope).Order("nome ASC").Order("id ASC")
	if err := pagination.Apply(q, filters.Pagination).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// UpdateFields writes the given columns on the product.
func (r *Repository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	return r.DB(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// RecalculateMargins rereads price and cost and writes the derived margins.
func (r *Repository) RecalculateMargins(ctx context.Context, id int64) (*models.Product, error) {
	product, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	bruta, percentual := Margins(product.PrecoVenda, product.CustoEstimado)
	if err := r.UpdateFields(ctx, id, map[string]any{
		"margem_bruta":      bruta,
		"margem_percentual": percentual,
	}); err != nil {
		return nil, err
	}
	product.MargemBruta = bruta
	product.MargemPercentual = percentual
	return product, nil
}

// Deactivate clears the ativo flag and reports rows affected.
func (r *Repository) Deactivate(ctx context.Context, id int64) (int64, error) {
	res := r.DB(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("ativo", false)
	return res.RowsAffected, res.Error
}
