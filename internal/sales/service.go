package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/casamais/casamais-backend/pkg/db"
	"github.com/casamais/casamais-backend/pkg/enums"
	pkgerrors "github.com/casamais/casamais-backend/pkg/errors"
	"github.com/casamais/casamais-backend/pkg/metrics"
	"github.com/casamais/casamais-backend/pkg/types"
	"gorm.io/gorm"
)

const (
	msgVendaNaoEncontrada   = "Venda não encontrada"
	msgProdutoNaoEncontrado = "Produto não encontrado"
	msgUsuarioInvalido      = "Usuário informado não existe"
	msgPeriodoObrigatorio   = "Data de início e data de fim são obrigatórias"
	msgPeriodoInvertido     = "Data de início deve ser anterior ou igual à data de fim"
)

// Service exposes the sale workflow.
type Service interface {
	List(ctx context.Context, filters Filters) ([]SaleDTO, error)
	Get(ctx context.Context, id int64) (*SaleDTO, error)
	Create(ctx context.Context, draft SaleDraft) (*SaleDTO, error)
	// Update reports false when the draft carried nothing to write; the
	// returned sale is then the stored one, unchanged.
	Update(ctx context.Context, id int64, draft SaleDraft) (*SaleDTO, bool, error)
	Delete(ctx context.Context, id int64) error
	Report(ctx context.Context, start, end *types.Date) ([]ReportRowDTO, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	metrics  *metrics.SalesMetrics
	now      func() time.Time
}

// NewService constructs the sale service. salesMetrics may be nil.
func NewService(repo *Repository, dbClient *db.Client, salesMetrics *metrics.SalesMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		metrics:  salesMetrics,
		now:      time.Now,
	}, nil
}

func (s *service) List(ctx context.Context, filters Filters) ([]SaleDTO, error) {
	records, err := s.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list sales")
	}
	out := make([]SaleDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, fromRecord(rec))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id int64) (*SaleDTO, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load sale")
	}
	if rec == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgVendaNaoEncontrada)
	}
	dto := fromRecord(*rec)
	return &dto, nil
}

// Create prices the sale from the product on record and inserts it. The
// pricing read and the insert share one transaction.
func (s *service) Create(ctx context.Context, draft SaleDraft) (*SaleDTO, error) {
	if errs := draft.Validate(false); len(errs) > 0 {
		return nil, pkgerrors.Validation(errs...)
	}

	sale := draft.NewSale(types.NewDate(s.now()))
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		pricing, err := s.loadPricing(ctx, txRepo, sale.ProdutoID)
		if err != nil {
			return err
		}

		valores := CalcularValores(sale.Quantidade, pricing.PrecoVenda, pricing.CustoEstimado, sale.Desconto)
		sale.ValorBruto = valores.ValorBruto
		sale.ValorFinal = valores.ValorFinal
		sale.CustoEstimadoTotal = valores.CustoEstimadoTotal
		sale.LucroEstimado = valores.LucroEstimado

		if err := txRepo.Create(ctx, &sale); err != nil {
			if db.IsForeignKeyViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeValidation, err, msgUsuarioInvalido).WithDetails(msgUsuarioInvalido)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert sale")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.metrics.IncOperation("create")
	s.metrics.AddRevenue(sale.FormaPagamento.String(), sale.ValorFinal)

	return s.Get(ctx, sale.ID)
}

// Update writes the supplied fields. When produto_id, quantidade or desconto
// is among them, all four monetary fields are re-derived from the current
// product pricing using the effective quantity and discount.
func (s *service) Update(ctx context.Context, id int64, draft SaleDraft) (*SaleDTO, bool, error) {
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

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		existing, err := txRepo.FindSale(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, msgVendaNaoEncontrada)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load sale")
		}

		fields := map[string]any{"updated_at": s.now()}
		if draft.FormaPagamento.Present {
			fields["forma_pagamento"] = enums.PaymentMethod(strings.TrimSpace(draft.FormaPagamento.Value))
		}
		if draft.Observacoes.Present {
			fields["observacoes"] = strings.TrimSpace(draft.Observacoes.Or(""))
		}
		if date, ok := draft.dataVenda(); ok {
			fields["data_venda"] = date
		}

		if draft.touchesPricing() {
			produtoID := draft.ProdutoID.Or(existing.ProdutoID)
			quantidade := draft.Quantidade.Or(existing.Quantidade)
			desconto := draft.Desconto.Or(existing.Desconto)

			pricing, err := s.loadPricing(ctx, txRepo, produtoID)
			if err != nil {
				return err
			}
			valores := CalcularValores(quantidade, pricing.PrecoVenda, pricing.CustoEstimado, desconto)

			fields["produto_id"] = produtoID
			fields["quantidade"] = quantidade
			fields["desconto"] = desconto
			fields["valor_bruto"] = valores.ValorBruto
			fields["valor_final"] = valores.ValorFinal
			fields["custo_estimado_total"] = valores.CustoEstimadoTotal
			fields["lucro_estimado"] = valores.LucroEstimado
		}

		if err := txRepo.UpdateFields(ctx, id, fields); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update sale")
		}
		return nil
	}); err != nil {
		return nil, false, err
	}

	s.metrics.IncOperation("update")

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return updated, true, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindSale(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, msgVendaNaoEncontrada)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load sale")
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete sale")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, msgVendaNaoEncontrada)
	}

	s.metrics.IncOperation("delete")
	return nil
}

// Report aggregates sales per day. Both bounds are required and checked
// before touching the database.
func (s *service) Report(ctx context.Context, start, end *types.Date) ([]ReportRowDTO, error) {
	if start == nil || end == nil || start.IsZero() || end.IsZero() {
		return nil, pkgerrors.Validation(msgPeriodoObrigatorio)
	}
	if end.Before(*start) {
		return nil, pkgerrors.Validation(msgPeriodoInvertido)
	}

	rows, err := s.repo.ReportByPeriod(ctx, *start, *end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: sales report")
	}
	out := make([]ReportRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromReportRow(row))
	}
	return out, nil
}

func (s *service) loadPricing(ctx context.Context, repo *Repository, produtoID int64) (*Pricing, error) {
	pricing, err := repo.ProductPricing(ctx, produtoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgProdutoNaoEncontrado)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product pricing")
	}
	return pricing, nil
}
