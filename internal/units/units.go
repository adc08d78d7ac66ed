// Package units serves the seeded unidades_medida reference table.
package units

import (
	"context"
	"fmt"

	"github.com/casamais/casamais-backend/internal/repo"
	"github.com/casamais/casamais-backend/pkg/db/models"
	pkgerrors "github.com/casamais/casamais-backend/pkg/errors"
	"gorm.io/gorm"
)

// UnitDTO is the JSON projection of a unit of measure.
type UnitDTO struct {
	ID    int64  `json:"id"`
	Nome  string `json:"nome"`
	Sigla string `json:"sigla"`
}

// Repository reads unidades_medida.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) List(ctx context.Context) ([]models.UnitOfMeasure, error) {
	var out []models.UnitOfMeasure
	if err := r.DB(ctx).Order("nome ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Exists reports whether a unit with id is on record.
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.DB(ctx).Model(&models.UnitOfMeasure{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Service lists units.
type Service interface {
	List(ctx context.Context) ([]UnitDTO, error)
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("units repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]UnitDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list units")
	}
	out := make([]UnitDTO, 0, len(rows))
	for _, u := range rows {
		out = append(out, UnitDTO{ID: u.ID, Nome: u.Nome, Sigla: u.Sigla})
	}
	return out, nil
}
