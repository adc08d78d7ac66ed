package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/casamais/casamais-backend/pkg/db"
	"github.com/casamais/casamais-backend/pkg/db/models"
	pkgerrors "github.com/casamais/casamais-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	msgProdutoNaoEncontrado = "Produto não encontrado"
)

// Service exposes product catalog operations.
type Service interface {
	List(ctx context.Context, filters ListFilters) ([]ProductDTO, int64, error)
	Get(ctx context.Context, id int64) (*ProductDTO, error)
	Create(ctx context.Context, draft ProductDraft) (*ProductDTO, error)
	Update(ctx context.Context, id int64, draft ProductDraft) (*ProductDTO, bool, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	now      func() time.Time
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		now:      time.Now,
	}, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]ProductDTO, int64, error) {
	products, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductDTO(p))
	}
	return out, total, nil
}

func (s *service) Get(ctx context.Context, id int64) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "db: load product")
	}
	dto := NewProductDTO(*product)
	return &dto, nil
}

// Create inserts the product, deriving its cost from the linked recipe when
// the recipe has a positive yield, then writes its margins. An unknown recipe
// is unlinked and the supplied cost kept.
func (s *service) Create(ctx context.Context, draft ProductDraft) (*ProductDTO, error) {
	if errs := draft.Validate(false); len(errs) > 0 {
		return nil, pkgerrors.Validation(errs...)
	}

	product := draft.NewProduct()
	var saved *models.Product
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if product.ReceitaID != nil {
			cost, found, err := recipeCost(ctx, txRepo, *product.ReceitaID)
			if err != nil {
				return err
			}
			switch {
			case !found:
				product.ReceitaID = nil
			case cost != nil:
				product.CustoEstimado = *cost
			}
		}

		if err := txRepo.Create(ctx, &product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}

		var err error
		saved, err = txRepo.RecalculateMargins(ctx, product.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: recalculate margins")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	dto := NewProductDTO(*saved)
	return &dto, nil
}

// Update applies a partial update. Supplying receita_id re-derives the cost
// from that recipe, falling back to the supplied or stored cost when the
// recipe has no yield or does not exist. Margins follow any pricing change.
func (s *service) Update(ctx context.Context, id int64, draft ProductDraft) (*ProductDTO, bool, error) {
	if errs := draft.Validate(true); len(errs) > 0 {
		return nil, false, pkgerrors.Validation(errs...)
	}
	if !draft.HasChanges() {
		current, err := s.Get(ctx, id)
		if err != nil {
			return nil, false, err
		}
		return current, false, nil
	}

	var saved *models.Product
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		existing, err := txRepo.FindByID(ctx, id)
		if err != nil {
			return notFoundOr(err, "db: load product")
		}

		fields := map[string]any{"updated_at": s.now()}
		if draft.Nome.Present {
			fields["nome"] = strings.TrimSpace(draft.Nome.Value)
		}
		if draft.Descricao.Present {
			fields["descricao"] = strings.TrimSpace(draft.Descricao.Or(""))
		}
		if draft.PrecoVenda.Present {
			fields["preco_venda"] = draft.PrecoVenda.Value
		}
		if draft.Ativo.Present {
			fields["ativo"] = draft.Ativo.Value
		}
		if draft.CustoEstimado.Present {
			fields["custo_estimado"] = draft.CustoEstimado.Value
		}
		if draft.ReceitaID.Present {
			fields["receita_id"] = draft.ReceitaID.Ptr()
			if draft.ReceitaID.Set() {
				cost, found, err := recipeCost(ctx, txRepo, draft.ReceitaID.Value)
				if err != nil {
					return err
				}
				switch {
				case !found:
					fields["receita_id"] = nil
				case cost != nil:
					fields["custo_estimado"] = *cost
				}
			}
		}

		if err := txRepo.UpdateFields(ctx, existing.ID, fields); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}

		if draft.touchesPricing() {
			saved, err = txRepo.RecalculateMargins(ctx, existing.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: recalculate margins")
			}
			return nil
		}
		saved, err = txRepo.FindByID(ctx, existing.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload product")
		}
		return nil
	}); err != nil {
		return nil, false, err
	}

	dto := NewProductDTO(*saved)
	return &dto, true, nil
}

// Delete deactivates the product; sales keep referencing it.
func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "db: load product")
	}
	affected, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: deactivate product")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, msgProdutoNaoEncontrado)
	}
	return nil
}

// recipeCost returns the unit cost of the recipe, nil when its yield cannot
// produce one. found is false when the recipe does not exist.
func recipeCost(ctx context.Context, repo *Repository, receitaID int64) (cost *decimal.Decimal, found bool, err error) {
	recipe, err := repo.FindRecipe(ctx, receitaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load recipe")
	}
	if unit, ok := CostFromRecipe(*recipe); ok {
		return &unit, true, nil
	}
	return nil, true, nil
}

func notFoundOr(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, msgProdutoNaoEncontrado)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
}
