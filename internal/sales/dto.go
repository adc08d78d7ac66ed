package sales

import (
	"strings"
	"time"

	"github.com/casamais/casamais-backend/pkg/db/models"
	"github.com/casamais/casamais-backend/pkg/enums"
	"github.com/casamais/casamais-backend/pkg/types"
	"github.com/shopspring/decimal"
)

const (
	msgProdutoObrigatorio = "Produto é obrigatório"
	msgQuantidadeInvalida = "Quantidade deve ser maior ou igual a 1"
	msgDescontoNegativo   = "Desconto não pode ser negativo"
	msgDescontoCentavos   = "Desconto deve ter no máximo duas casas decimais"
	msgFormaPagamento     = "Forma de pagamento inválida. Use: Pix, Dinheiro, Débito ou Crédito"
	msgDataVenda          = "Data da venda inválida (use AAAA-MM-DD)"
	msgObservacoes        = "Observações devem ser texto"
)

// moneyPlaces matches the scale of the numeric(12,2) money columns.
const moneyPlaces = 2

// SaleDraft is the sale payload accepted on create and update. Every field
// records whether the caller sent it so updates touch only what was supplied.
type SaleDraft struct {
	ProdutoID      types.Optional[int64]           `json:"produto_id"`
	Quantidade     types.Optional[int]             `json:"quantidade"`
	Desconto       types.Optional[decimal.Decimal] `json:"desconto"`
	FormaPagamento types.Optional[string]          `json:"forma_pagamento"`
	Observacoes    types.Optional[string]          `json:"observacoes"`
	DataVenda      types.Optional[string]          `json:"data_venda"`
	UsuarioID      types.Optional[int64]           `json:"usuario_id"`
}

// Validate returns one message per failed rule. On create every rule runs
// against the draft with defaults applied; on update a rule only runs when
// its field was sent.
func (d SaleDraft) Validate(isUpdate bool) []string {
	var errs []string

	if !isUpdate || d.ProdutoID.Present {
		if !d.ProdutoID.Set() || d.ProdutoID.Value <= 0 {
			errs = append(errs, msgProdutoObrigatorio)
		}
	}

	// Absent fields fall back to valid defaults on create.
	if d.Quantidade.Present && (!d.Quantidade.Set() || d.Quantidade.Value < 1) {
		errs = append(errs, msgQuantidadeInvalida)
	}

	if d.Desconto.Present {
		switch {
		case !d.Desconto.Set() || d.Desconto.Value.IsNegative():
			errs = append(errs, msgDescontoNegativo)
		case !d.Desconto.Value.Equal(d.Desconto.Value.Round(moneyPlaces)):
			// Money columns hold cents.
			errs = append(errs, msgDescontoCentavos)
		}
	}

	if d.FormaPagamento.Present {
		if !d.FormaPagamento.Set() || !enums.PaymentMethod(strings.TrimSpace(d.FormaPagamento.Value)).IsValid() {
			errs = append(errs, msgFormaPagamento)
		}
	}

	if d.dataVendaSupplied() {
		if d.DataVenda.Invalid {
			errs = append(errs, msgDataVenda)
		} else if _, err := time.Parse(types.DateLayout, strings.TrimSpace(d.DataVenda.Value)); err != nil {
			errs = append(errs, msgDataVenda)
		}
	}

	if d.Observacoes.Invalid {
		errs = append(errs, msgObservacoes)
	}

	return errs
}

// HasChanges reports whether the draft carries any updatable field. The
// creator is fixed at insert time.
func (d SaleDraft) HasChanges() bool {
	return d.ProdutoID.Present ||
		d.Quantidade.Present ||
		d.Desconto.Present ||
		d.FormaPagamento.Present ||
		d.Observacoes.Present ||
		d.dataVendaSupplied()
}

func (d SaleDraft) touchesPricing() bool {
	return d.ProdutoID.Present || d.Quantidade.Present || d.Desconto.Present
}

// An empty or null data_venda means "not supplied".
func (d SaleDraft) dataVendaSupplied() bool {
	if !d.DataVenda.Present || d.DataVenda.Null {
		return false
	}
	return d.DataVenda.Invalid || strings.TrimSpace(d.DataVenda.Value) != ""
}

func (d SaleDraft) dataVenda() (types.Date, bool) {
	if !d.dataVendaSupplied() || d.DataVenda.Invalid {
		return types.Date{}, false
	}
	parsed, err := types.ParseDate(d.DataVenda.Value)
	if err != nil {
		return types.Date{}, false
	}
	return parsed, true
}

// NewSale builds the sale row for an already validated create draft. The
// monetary fields stay zero until CalcularValores fills them.
func (d SaleDraft) NewSale(today types.Date) models.Sale {
	sale := models.Sale{
		ProdutoID:      d.ProdutoID.Value,
		Quantidade:     d.Quantidade.Or(1),
		Desconto:       d.Desconto.Or(decimal.Zero),
		FormaPagamento: enums.DefaultPaymentMethod,
		Observacoes:    strings.TrimSpace(d.Observacoes.Or("")),
		DataVenda:      today,
		UsuarioID:      d.UsuarioID.Ptr(),
	}
	if d.FormaPagamento.Set() {
		sale.FormaPagamento = enums.PaymentMethod(strings.TrimSpace(d.FormaPagamento.Value))
	}
	if date, ok := d.dataVenda(); ok {
		sale.DataVenda = date
	}
	return sale
}

// Filters narrows sale listings. Nil fields are ignored.
type Filters struct {
	DataInicio *types.Date
	DataFim    *types.Date
	ProdutoID  *int64
}

// SaleDTO is the JSON projection of a sale. Money is rendered as numbers.
type SaleDTO struct {
	ID                 int64      `json:"id"`
	ProdutoID          int64      `json:"produto_id"`
	Quantidade         int        `json:"quantidade"`
	ValorBruto         float64    `json:"valor_bruto"`
	Desconto           float64    `json:"desconto"`
	ValorFinal         float64    `json:"valor_final"`
	FormaPagamento     string     `json:"forma_pagamento"`
	CustoEstimadoTotal float64    `json:"custo_estimado_total"`
	LucroEstimado      float64    `json:"lucro_estimado"`
	Observacoes        string     `json:"observacoes"`
	DataVenda          types.Date `json:"data_venda"`
	UsuarioID          *int64     `json:"usuario_id"`
	ProdutoNome        *string    `json:"produto_nome,omitempty"`
	ProdutoPreco       *float64   `json:"produto_preco,omitempty"`
	UsuarioNome        *string    `json:"usuario_nome,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ReportRowDTO is one day of the period report.
type ReportRowDTO struct {
	Data               types.Date `json:"data"`
	TotalVendas        int64      `json:"total_vendas"`
	TotalQuantidade    int64      `json:"total_quantidade"`
	TotalValorBruto    float64    `json:"total_valor_bruto"`
	TotalDesconto      float64    `json:"total_desconto"`
	TotalValorFinal    float64    `json:"total_valor_final"`
	TotalCustoEstimado float64    `json:"total_custo_estimado"`
	TotalLucroEstimado float64    `json:"total_lucro_estimado"`
}

// FromModel maps a sale row to its DTO.
func FromModel(m models.Sale) SaleDTO {
	return SaleDTO{
		ID:                 m.ID,
		ProdutoID:          m.ProdutoID,
		Quantidade:         m.Quantidade,
		ValorBruto:         m.ValorBruto.InexactFloat64(),
		Desconto:           m.Desconto.InexactFloat64(),
		ValorFinal:         m.ValorFinal.InexactFloat64(),
		FormaPagamento:     m.FormaPagamento.String(),
		CustoEstimadoTotal: m.CustoEstimadoTotal.InexactFloat64(),
		LucroEstimado:      m.LucroEstimado.InexactFloat64(),
		Observacoes:        m.Observacoes,
		DataVenda:          m.DataVenda,
		UsuarioID:          m.UsuarioID,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func fromRecord(rec SaleRecord) SaleDTO {
	dto := FromModel(rec.Sale)
	dto.ProdutoNome = rec.ProdutoNome
	dto.UsuarioNome = rec.UsuarioNome
	if rec.ProdutoPreco.Valid {
		preco := rec.ProdutoPreco.Decimal.InexactFloat64()
		dto.ProdutoPreco = &preco
	}
	return dto
}

func fromReportRow(row ReportRow) ReportRowDTO {
	return ReportRowDTO{
		Data:               row.Data,
		TotalVendas:        row.TotalVendas,
		TotalQuantidade:    row.TotalQuantidade,
		TotalValorBruto:    row.TotalValorBruto.InexactFloat64(),
		TotalDesconto:      row.TotalDesconto.InexactFloat64(),
		TotalValorFinal:    row.TotalValorFinal.InexactFloat64(),
		TotalCustoEstimado: row.TotalCustoEstimado.InexactFloat64(),
		TotalLucroEstimado: row.TotalLucroEstimado.InexactFloat64(),
	}
}
