package recipes

import (
	"context"

	"github.com/casamais/casamais-backend/internal/repo"
	"github.com/casamais/casamais-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository owns recipe persistence.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) Create(ctx context.Context, recipe *models.Recipe) error {
	return r.DB(ctx).Create(recipe).Error
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.DB(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Recipe, error) {
	var out []models.Recipe
	if err := r.DB(ctx).Order("nome ASC").Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	return r.DB(ctx).Model(&models.Recipe{}).Where("id = ?", id).Updates(fields).Error
}
