package users

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/casamais/casamais-backend/pkg/config"
	"github.com/casamais/casamais-backend/pkg/db"
	"github.com/casamais/casamais-backend/pkg/enums"
	pkgerrors "github.com/casamais/casamais-backend/pkg/errors"
	"github.com/casamais/casamais-backend/pkg/security"
)

const (
	msgNomeObrigatorio = "Nome é obrigatório"
	msgEmailInvalido   = "E-mail inválido"
	msgSenhaCurta      = "Senha deve ter pelo menos 8 caracteres"
	msgPapelInvalido   = "Papel inválido. Use: admin, coordenacao ou voluntario"
	msgEmailEmUso      = "E-mail já cadastrado"
)

// MinPasswordLen is the shortest password accepted for new users.
const MinPasswordLen = 8

// CreateUserInput is what an operator supplies to provision a staff user.
type CreateUserInput struct {
	Nome     string
	Email    string
	Password string
	Papel    string
}

// Service provisions staff users.
type Service struct {
	repo  *Repository
	pwCfg config.PasswordConfig
}

func NewService(repo *Repository, pwCfg config.PasswordConfig) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &Service{repo: repo, pwCfg: pwCfg}, nil
}

// Create validates the input, hashes the password and inserts the user.
func (s *Service) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	var errs []string
	if strings.TrimSpace(input.Nome) == "" {
		errs = append(errs, msgNomeObrigatorio)
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(input.Email)); err != nil {
		errs = append(errs, msgEmailInvalido)
	}
	if len(input.Password) < MinPasswordLen {
		errs = append(errs, msgSenhaCurta)
	}
	role, err := enums.ParseRole(strings.ToLower(strings.TrimSpace(input.Papel)))
	if err != nil {
		errs = append(errs, msgPapelInvalido)
	}
	if len(errs) > 0 {
		return nil, pkgerrors.Validation(errs...)
	}

	hash, err := security.HashPassword(input.Password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.repo.Create(ctx, CreateUserDTO{
		Nome:         input.Nome,
		Email:        input.Email,
		PasswordHash: hash,
		Papel:        role,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, msgEmailEmUso)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert user")
	}
	return FromModel(user), nil
}
