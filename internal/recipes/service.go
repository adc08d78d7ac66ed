package recipes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/casamais/casamais-backend/pkg/db/models"
	pkgerrors "github.com/casamais/casamais-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const msgReceitaNaoEncontrada = "Receita não encontrada"

// Service exposes recipe operations. Recipes are never deleted since products
// may still be costed from them.
type Service interface {
	List(ctx context.Context) ([]RecipeDTO, error)
	Get(ctx context.Context, id int64) (*RecipeDTO, error)
	Create(ctx context.Context, draft RecipeDraft) (*RecipeDTO, error)
	Update(ctx context.Context, id int64, draft RecipeDraft) (*RecipeDTO, bool, error)
}

type service struct {
	repo *Repository
	now  func() time.Time
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("recipe repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) List(ctx context.Context) ([]RecipeDTO, error) {
	recipes, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list recipes")
	}
	out := make([]RecipeDTO, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, NewRecipeDTO(r))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id int64) (*RecipeDTO, error) {
	recipe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgReceitaNaoEncontrada)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load recipe")
	}
	dto := NewRecipeDTO(*recipe)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, draft RecipeDraft) (*RecipeDTO, error) {
	if errs := draft.Validate(false); len(errs) > 0 {
		return nil, pkgerrors.Validation(errs...)
	}
	recipe := models.Recipe{
		Nome:       strings.TrimSpace(draft.Nome.Value),
		Rendimento: draft.Rendimento.Or(decimal.Zero),
		CustoTotal: draft.CustoTotal.Or(decimal.Zero),
	}
	if err := s.repo.Create(ctx, &recipe); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert recipe")
	}
	dto := NewRecipeDTO(recipe)
	return &dto, nil
}

// Update writes the supplied fields. Products already costed from the recipe
// keep their stored cost until they are updated with the recipe again.
func (s *service) Update(ctx context.Context, id int64, draft RecipeDraft) (*RecipeDTO, bool, error) {
	if errs := draft.Validate(true); len(errs) > 0 {
		return nil, false, pkgerrors.Validation(errs...)
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if !draft.HasChanges() {
		return current, false, nil
	}

	fields := map[string]any{"updated_at": s.now()}
	if draft.Nome.Present {
		fields["nome"] = strings.TrimSpace(draft.Nome.Value)
	}
	if draft.Rendimento.Present {
		fields["rendimento"] = draft.Rendimento.Value
	}
	if draft.CustoTotal.Present {
		fields["custo_total"] = draft.CustoTotal.Value
	}
	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update recipe")
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return updated, true, nil
}
