package models

import (
	"time"

	"github.com/casamais/casamais-backend/pkg/enums"
	"github.com/casamais/casamais-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// Sale is a single bazaar sale. ValorBruto, ValorFinal, CustoEstimadoTotal and
// LucroEstimado are only ever written from the product pricing on record.
type Sale struct {
	ID                 int64               `gorm:"column:id;primaryKey;autoIncrement"`
	ProdutoID          int64               `gorm:"column:produto_id;not null"`
	Quantidade         int                 `gorm:"column:quantidade;not null;default:1"`
	ValorBruto         decimal.Decimal     `gorm:"column:valor_bruto;type:numeric(12,2);not null;default:0"`
	Desconto           decimal.Decimal     `gorm:"column:desconto;type:numeric(12,2);not null;default:0"`
	ValorFinal         decimal.Decimal     `gorm:"column:valor_final;type:numeric(12,2);not null;default:0"`
	FormaPagamento     enums.PaymentMethod `gorm:"column:forma_pagamento;not null;default:'Dinheiro'"`
	CustoEstimadoTotal decimal.Decimal     `gorm:"column:custo_estimado_total;type:numeric(12,2);not null;default:0"`
	LucroEstimado      decimal.Decimal     `gorm:"column:lucro_estimado;type:numeric(12,2);not null;default:0"`
	Observacoes        string              `gorm:"column:observacoes;not null;default:''"`
	DataVenda          types.Date          `gorm:"column:data_venda;type:date;not null"`
	UsuarioID          *int64              `gorm:"column:usuario_id"`
	CreatedAt          time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (Sale) TableName() string { return "vendas" }
