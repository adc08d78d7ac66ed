package recipes

import (
	"strings"
	"time"

	"github.com/casamais/casamais-backend/pkg/db/models"
	"github.com/casamais/casamais-backend/pkg/types"
	"github.com/shopspring/decimal"
)

const (
	msgNomeObrigatorio    = "Nome é obrigatório"
	msgRendimentoNegativo = "Rendimento não pode ser negativo"
	msgCustoNegativo      = "Custo total não pode ser negativo"
)

// RecipeDraft is the recipe payload accepted on create and update.
type RecipeDraft struct {
	Nome       types.Optional[string]          `json:"nome"`
	Rendimento types.Optional[decimal.Decimal] `json:"rendimento"`
	CustoTotal types.Optional[decimal.Decimal] `json:"custo_total"`
}

func (d RecipeDraft) Validate(isUpdate bool) []string {
	var errs []string
	if !isUpdate || d.Nome.Present {
		if !d.Nome.Set() || strings.TrimSpace(d.Nome.Value) == "" {
			errs = append(errs, msgNomeObrigatorio)
		}
	}
	if d.Rendimento.Present && (!d.Rendimento.Set() || d.Rendimento.Value.IsNegative()) {
		errs = append(errs, msgRendimentoNegativo)
	}
	if d.CustoTotal.Present && (!d.CustoTotal.Set() || d.CustoTotal.Value.IsNegative()) {
		errs = append(errs, msgCustoNegativo)
	}
	return errs
}

func (d RecipeDraft) HasChanges() bool {
	return d.Nome.Present || d.Rendimento.Present || d.CustoTotal.Present
}

// RecipeDTO is the JSON projection of a recipe.
type RecipeDTO struct {
	ID         int64     `json:"id"`
	Nome       string    `json:"nome"`
	Rendimento float64   `json:"rendimento"`
	CustoTotal float64   `json:"custo_total"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewRecipeDTO(r models.Recipe) RecipeDTO {
	return RecipeDTO{
		ID:         r.ID,
		Nome:       r.Nome,
		Rendimento: r.Rendimento.InexactFloat64(),
		CustoTotal: r.CustoTotal.InexactFloat64(),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
