package models

import "time"

// Medication is an entry in the medication catalog.
type Medication struct {
	ID                int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Nome              string    `gorm:"column:nome;not null"`
	FormaFarmaceutica string    `gorm:"column:forma_farmaceutica;not null;default:''"`
	Descricao         string    `gorm:"column:descricao;not null;default:''"`
	UnidadeMedidaID   int64     `gorm:"column:unidade_medida_id;not null"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Medication) TableName() string { return "medicamentos" }
