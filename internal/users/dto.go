package users

import (
	"strings"
	"time"

	"github.com/casamais/casamais-backend/pkg/db/models"
	"github.com/casamais/casamais-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          int64      `json:"id"`
	Nome        string     `json:"nome"`
	Email       string     `json:"email"`
	Papel       enums.Role `json:"papel"`
	Permissoes  []string   `json:"permissoes"`
	Ativo       bool       `json:"ativo"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Nome         string
	Email        string
	PasswordHash string
	Papel        enums.Role
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:          u.ID,
		Nome:        u.Nome,
		Email:       u.Email,
		Papel:       u.Papel,
		Permissoes:  enums.PermissionStrings(u.Papel),
		Ativo:       u.Ativo,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Nome:      strings.TrimSpace(c.Nome),
		Email:     NormalizeEmail(c.Email),
		SenhaHash: c.PasswordHash,
		Papel:     c.Papel,
		Ativo:     true,
	}
}

// NormalizeEmail lowercases and trims an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
