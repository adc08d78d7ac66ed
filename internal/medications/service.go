package medications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/casamais/casamais-backend/pkg/db"
	pkgerrors "github.com/casamais/casamais-backend/pkg/errors"
)

const msgMedicamentoNaoEncontrado = "Medicamento não encontrado"

// Service exposes medication catalog operations.
type Service interface {
	List(ctx context.Context, filters ListFilters) ([]MedicationDTO, int64, error)
	Get(ctx context.Context, id int64) (*MedicationDTO, error)
	Create(ctx context.Context, draft MedicationDraft) (*MedicationDTO, error)
	Update(ctx context.Context, id int64, draft MedicationDraft) (*MedicationDTO, bool, error)
	Delete(ctx context.Context, id int64) error
}

type unitChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type service struct {
	repo  *Repository
	units unitChecker
	now   func() time.Time
}

// NewService constructs a medication service instance.
func NewService(repo *Repository, units unitChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("medication repository required")
	}
	if units == nil {
		return nil, fmt.Errorf("unit checker required")
	}
	return &service{repo: repo, units: units, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]MedicationDTO, int64, error) {
	rows, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list medications")
	}
	out := make([]MedicationDTO, 0, len(rows))
	for _, rec := range rows {
		out = append(out, newMedicationDTO(rec))
	}
	return out, total, nil
}

func (s *service) Get(ctx context.Context, id int64) (*MedicationDTO, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load medication")
	}
	if rec == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgMedicamentoNaoEncontrado)
	}
	dto := newMedicationDTO(*rec)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, draft MedicationDraft) (*MedicationDTO, error) {
	if errs := draft.Validate(false); len(errs) > 0 {
		return nil, pkgerrors.Validation(errs...)
	}
	if err := s.ensureUnit(ctx, draft.UnidadeMedidaID.Value); err != nil {
		return nil, err
	}

	m := newMedication(draft)
	if err := s.repo.Create(ctx, &m); err != nil {
		return nil, writeError(err, "db: insert medication")
	}
	return s.Get(ctx, m.ID)
}

func (s *service) Update(ctx context.Context, id int64, draft MedicationDraft) (*MedicationDTO, bool, error) {
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
	if draft.FormaFarmaceutica.Present {
		fields["forma_farmaceutica"] = strings.TrimSpace(draft.FormaFarmaceutica.Or(""))
	}
	if draft.Descricao.Present {
		fields["descricao"] = strings.TrimSpace(draft.Descricao.Or(""))
	}
	if draft.UnidadeMedidaID.Present {
		if err := s.ensureUnit(ctx, draft.UnidadeMedidaID.Value); err != nil {
			return nil, false, err
		}
		fields["unidade_medida_id"] = draft.UnidadeMedidaID.Value
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, false, writeError(err, "db: update medication")
	}
	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return updated, true, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete medication")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, msgMedicamentoNaoEncontrado)
	}
	return nil
}

func (s *service) ensureUnit(ctx context.Context, id int64) error {
	ok, err := s.units.Exists(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check unit")
	}
	if !ok {
		return pkgerrors.Validation(msgUnidadeInexistente)
	}
	return nil
}

// A unit removed between the check and the write still reads as bad input.
func writeError(err error, op string) error {
	if db.IsForeignKeyViolation(err, "") {
		return pkgerrors.Validation(msgUnidadeInexistente)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
}
