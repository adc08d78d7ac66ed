package models

import (
	"time"

	"github.com/casamais/casamais-backend/pkg/enums"
)

// User represents a staff account.
type User struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Nome        string     `gorm:"column:nome;not null"`
	Email       string     `gorm:"column:email;type:text;not null;uniqueIndex"`
	SenhaHash   string     `gorm:"column:senha_hash;not null"`
	Papel       enums.Role `gorm:"column:papel;not null;default:'voluntario'"`
	Ativo       bool       `gorm:"column:ativo;not null"`
	LastLoginAt *time.Time `gorm:"column:last_login_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string { return "usuarios" }
