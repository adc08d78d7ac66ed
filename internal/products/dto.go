package product

import (
	"strings"
	"time"

	"github.com/casamais/casamais-backend/pkg/db/models"
	"github.com/casamais/casamais-backend/pkg/pagination"
	"github.com/casamais/casamais-backend/pkg/types"
	"github.com/shopspring/decimal"
)

const (
	msgNomeObrigatorio = "Nome é obrigatório"
	msgPrecoNegativo   = "Preço de venda não pode ser negativo"
	msgCustoNegativo   = "Custo estimado não pode ser negativo"
	msgReceitaInvalida = "Receita inválida"
	msgAtivoInvalido   = "Ativo deve ser verdadeiro ou falso"
)

// ProductDraft is the product payload accepted on create and update.
type ProductDraft struct {
	Nome          types.Optional[string]          `json:"nome"`
	Descricao     types.Optional[string]          `json:"descricao"`
	PrecoVenda    types.Optional[decimal.Decimal] `json:"preco_venda"`
	ReceitaID     types.Optional[int64]           `json:"receita_id"`
	CustoEstimado types.Optional[decimal.Decimal] `json:"custo_estimado"`
	Ativo         types.Optional[bool]            `json:"ativo"`
}

// Validate checks the draft. On update only supplied fields are checked. A
// null receita_id on update unlinks the recipe.
func (d ProductDraft) Validate(isUpdate bool) []string {
	var errs []string

	if !isUpdate || d.Nome.Present {
		if strings.TrimSpace(d.Nome.Value) == "" || !d.Nome.Set() {
			errs = append(errs, msgNomeObrigatorio)
		}
	}
	if d.PrecoVenda.Present && (!d.PrecoVenda.Set() || d.PrecoVenda.Value.IsNegative()) {
		errs = append(errs, msgPrecoNegativo)
	}
	if d.CustoEstimado.Present && (!d.CustoEstimado.Set() || d.CustoEstimado.Value.IsNegative()) {
		errs = append(errs, msgCustoNegativo)
	}
	if d.ReceitaID.Invalid || (d.ReceitaID.Set() && d.ReceitaID.Value <= 0) {
		errs = append(errs, msgReceitaInvalida)
	}
	if d.Ativo.Present && !d.Ativo.Set() {
		errs = append(errs, msgAtivoInvalido)
	}
	return errs
}

// HasChanges reports whether the draft carries any field.
func (d ProductDraft) HasChanges() bool {
	return d.Nome.Present ||
		d.Descricao.Present ||
		d.PrecoVenda.Present ||
		d.ReceitaID.Present ||
		d.CustoEstimado.Present ||
		d.Ativo.Present
}

func (d ProductDraft) touchesPricing() bool {
	return d.PrecoVenda.Present || d.CustoEstimado.Present || d.ReceitaID.Present
}

// NewProduct builds the row for a validated create draft. Margins are filled
// after insert.
func (d ProductDraft) NewProduct() models.Product {
	return models.Product{
		Nome:          strings.TrimSpace(d.Nome.Value),
		Descricao:     strings.TrimSpace(d.Descricao.Or("")),
		PrecoVenda:    d.PrecoVenda.Or(decimal.Zero),
		ReceitaID:     d.ReceitaID.Ptr(),
		CustoEstimado: d.CustoEstimado.Or(decimal.Zero),
		Ativo:         d.Ativo.Or(true),
	}
}

// ListFilters narrows product listings.
type ListFilters struct {
	IncluirInativos bool
	Busca           string
	Pagination      pagination.Params
}

// ProductDTO is the JSON projection of a product.
type ProductDTO struct {
	ID               int64     `json:"id"`
	Nome             string    `json:"nome"`
	Descricao        string    `json:"descricao"`
	PrecoVenda       float64   `json:"preco_venda"`
	ReceitaID        *int64    `json:"receita_id"`
	CustoEstimado    float64   `json:"custo_estimado"`
	MargemBruta      float64   `json:"margem_bruta"`
	MargemPercentual float64   `json:"margem_percentual"`
	Ativo            bool      `json:"ativo"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewProductDTO maps the persisted model to its DTO.
func NewProductDTO(p models.Product) ProductDTO {
	return ProductDTO{
		ID:               p.ID,
		Nome:             p.Nome,
		Descricao:        p.Descricao,
		PrecoVenda:       p.PrecoVenda.InexactFloat64(),
		ReceitaID:        p.ReceitaID,
		CustoEstimado:    p.CustoEstimado.InexactFloat64(),
		MargemBruta:      p.MargemBruta.InexactFloat64(),
		MargemPercentual: p.MargemPercentual.InexactFloat64(),
		Ativo:            p.Ativo,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
