package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe holds the batch cost and yield used to derive a product's unit cost.
type Recipe struct {
	ID         int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Nome       string          `gorm:"column:nome;not null"`
	Rendimento decimal.Decimal `gorm:"column:rendimento;type:numeric(12,2);not null;default:0"`
	CustoTotal decimal.Decimal `gorm:"column:custo_total;type:numeric(12,2);not null;default:0"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Recipe) TableName() string { return "receitas" }
