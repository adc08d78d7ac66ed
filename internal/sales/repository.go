package sales

import (
	"context"

	"github.com/casamais/casamais-backend/internal/repo"
	"github.com/casamais/casamais-backend/pkg/db/models"
	"github.com/casamais/casamais-backend/pkg/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Pricing is the product snapshot a sale is priced from.
type Pricing struct {
	PrecoVenda    decimal.Decimal `gorm:"column:preco_venda"`
	CustoEstimado decimal.Decimal `gorm:"column:custo_estimado"`
}

// SaleRecord is a sale joined with the display fields of its product and creator.
type SaleRecord struct {
	models.Sale
	ProdutoNome  *string             `gorm:"column:produto_nome"`
	ProdutoPreco decimal.NullDecimal `gorm:"column:produto_preco"`
	UsuarioNome  *string             `gorm:"column:usuario_nome"`
}

// ReportRow aggregates the sales of one calendar day.
type ReportRow struct {
	Data               types.Date      `gorm:"column:data"`
	TotalVendas        int64           `gorm:"column:total_vendas"`
	TotalQuantidade    int64           `gorm:"column:total_quantidade"`
	TotalValorBruto    decimal.Decimal `gorm:"column:total_valor_bruto"`
	TotalDesconto      decimal.Decimal `gorm:"column:total_desconto"`
	TotalValorFinal    decimal.Decimal `gorm:"column:total_valor_final"`
	TotalCustoEstimado decimal.Decimal `gorm:"column:total_custo_estimado"`
	TotalLucroEstimado decimal.Decimal `gorm:"column:total_lucro_estimado"`
}

const reportColumns = `
data_venda AS data,
COUNT(*) AS total_vendas,
COALESCE(SUM(quantidade), 0) AS total_quantidade,
COALESCE(SUM(valor_bruto), 0) AS total_valor_bruto,
COALESCE(SUM(desconto), 0) AS total_desconto,
COALESCE(SUM(valor_final), 0) AS total_valor_final,
COALESCE(SUM(custo_estimado_total), 0) AS total_custo_estimado,
COALESCE(SUM(lucro_estimado), 0) AS total_lucro_estimado`

const recordColumns = "v.*, p.nome AS produto_nome, p.preco_venda AS produto_preco, u.nome AS usuario_nome"

// Repository owns every query against vendas.
type Repository struct {
	repo.Base
}

// NewRepository builds a sales repository bound to db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(tx)}
}

// ProductPricing reads the current price and cost of a product, holding a
// shared lock on the row until the surrounding transaction ends.
// Returns gorm.ErrRecordNotFound when the product does not exist.
func (r *Repository) ProductPricing(ctx context.Context, produtoID int64) (*Pricing, error) {
	var pricing Pricing
	err := r.ForShare(ctx).
		Model(&models.Product{}).
		Select("preco_venda", "custo_estimado").
		Where("id = ?", produtoID).
		Take(&pricing).Error
	if err != nil {
		return nil, err
	}
	return &pricing, nil
}

// Create inserts the sale and fills its generated id.
func (r *Repository) Create(ctx context.Context, sale *models.Sale) error {
	return r.DB(ctx).Create(sale).Error
}

// FindSale loads the bare sale row. Returns gorm.ErrRecordNotFound when absent.
func (r *Repository) FindSale(ctx context.Context, id int64) (*models.Sale, error) {
	var sale models.Sale
	if err := r.DB(ctx).First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// FindByID loads the sale with its display joins. A missing sale yields nil, nil.
func (r *Repository) FindByID(ctx context.Context, id int64) (*SaleRecord, error) {
	var records []SaleRecord
	if err := r.records(ctx).Where("v.id = ?", id).Limit(1).Scan(&records).Error; err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// FindAll lists sales newest first, ties broken by id.
func (r *Repository) FindAll(ctx context.Context, filters Filters) ([]SaleRecord, error) {
	q := r.records(ctx)
	if filters.DataInicio != nil {
		q = q.Where("v.data_venda >= ?", *filters.DataInicio)
	}
	if filters.DataFim != nil {
		q = q.Where("v.data_venda <= ?", *filters.DataFim)
	}
	if filters.ProdutoID != nil {
		q = q.Where("v.produto_id = ?", *filters.ProdutoID)
	}

	var records []SaleRecord
	if err := q.Order("v.data_venda DESC").Order("v.id DESC").Scan(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateFields writes the given columns on the sale.
func (r *Repository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	return r.DB(ctx).
		Model(&models.Sale{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete removes the sale row and reports how many rows were affected.
func (r *Repository) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.DB(ctx).Where("id = ?", id).Delete(&models.Sale{})
	return res.RowsAffected, res.Error
}

// ReportByPeriod aggregates sales per day between start and end inclusive,
// newest day first.
func (r *Repository) ReportByPeriod(ctx context.Context, start, end types.Date) ([]ReportRow, error) {
	var rows []ReportRow
	err := r.DB(ctx).
		Table("vendas").
		Select(reportColumns).
		Where("data_venda >= ? AND data_venda <= ?", start, end).
		Group("data_venda").
		Order("data DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) records(ctx context.Context) *gorm.DB {
	return r.DB(ctx).
		Table("vendas AS v").
		Select(recordColumns).
		Joins("LEFT JOIN produtos p ON p.id = v.produto_id").
		Joins("LEFT JOIN usuarios u ON u.id = v.usuario_id")
}
