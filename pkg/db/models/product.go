package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item sold by the bazaar. Margin columns are derived
// from PrecoVenda and CustoEstimado and rewritten after every pricing change.
type Product struct {
	ID               int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Nome             string          `gorm:"column:nome;not null"`
	Descricao        string          `gorm:"column:descricao;not null;default:''"`
	PrecoVenda       decimal.Decimal `gorm:"column:preco_venda;type:numeric(12,2);not null;default:0"`
	ReceitaID        *int64          `gorm:"column:receita_id"`
	CustoEstimado    decimal.Decimal `gorm:"column:custo_estimado;type:numeric(12,2);not null;default:0"`
	MargemBruta      decimal.Decimal `gorm:"column:margem_bruta;type:numeric(12,2);not null;default:0"`
	MargemPercentual decimal.Decimal `gorm:"column:margem_percentual;type:numeric(10,2);not null;default:0"`
	Ativo            bool            `gorm:"column:ativo;not null"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string { return "produtos" }
