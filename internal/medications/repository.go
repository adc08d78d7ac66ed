package medications

import (
	"context"
	"strings"

	"github.com/casamais/casamais-backend/internal/repo"
	"github.com/casamais/casamais-backend/pkg/db/models"
	"github.com/casamais/casamais-backend/pkg/pagination"
	"gorm.io/gorm"
)

// MedicationRecord is a medication joined with its unit.
type MedicationRecord struct {
	models.Medication
	UnidadeMedidaNome  *string `gorm:"column:unidade_medida_nome"`
	UnidadeMedidaSigla *string `gorm:"column:unidade_medida_sigla"`
}

// Repository owns medicamentos persistence.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) Create(ctx context.Context, m *models.Medication) error {
	return r.DB(ctx).Create(m).Error
}

// FindByID returns the joined record, or nil when absent.
func (r *Repository) FindByID(ctx context.Context, id int64) (*MedicationRecord, error) {
	var rows []MedicationRecord
	if err := r.records(ctx).Where("m.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// List returns medications by name plus the total matching count.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]MedicationRecord, int64, error) {
	busca := strings.ToLower(strings.TrimSpace(filters.Busca))
	scope := func(q *gorm.DB) *gorm.DB {
		if busca != "" {
			q = q.Where("LOWER(m.nome) LIKE ?", "%"+busca+"%")
		}
		return q
	}

	var total int64
	if err := r.DB(ctx).Table("medicamentos AS m").Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []MedicationRecord
	q := r.records(ctx).Scopes(scope).Order("m.nome ASC").Order("m.id ASC")
	if err := pagination.Apply(q, filters.Pagination).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *Repository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	return r.DB(ctx).Model(&models.Medication{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes the row and reports rows affected.
func (r *Repository) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.DB(ctx).Where("id = ?", id).Delete(&models.Medication{})
	return res.RowsAffected, res.Error
}

func (r *Repository) records(ctx context.Context) *gorm.DB {
	return r.DB(ctx).
		Table("medicamentos AS m").
		Select("m.*, u.nome AS unidade_medida_nome, u.sigla AS unidade_medida_sigla").
		Joins("LEFT JOIN unidades_medida u ON u.id = m.unidade_medida_id")
}
