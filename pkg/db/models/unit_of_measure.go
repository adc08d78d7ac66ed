package models

// UnitOfMeasure is a seeded reference row (mg, ml, comprimido...).
type UnitOfMeasure struct {
	ID    int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Nome  string `gorm:"column:nome;not null"`
	Sigla string `gorm:"column:sigla;not null"`
}

func (UnitOfMeasure) TableName() string { return "unidades_medida" }
