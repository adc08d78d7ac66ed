package medications

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/casamais/casamais-backend/pkg/db/models"
	"github.com/casamais/casamais-backend/pkg/pagination"
	"github.com/casamais/casamais-backend/pkg/types"
)

// MaxDescricaoLen bounds descricao, counted in characters.
const MaxDescricaoLen = 250

const (
	msgNomeObrigatorio    = "Nome é obrigatório"
	msgDescricaoLonga     = "Descrição deve ter no máximo 250 caracteres"
	msgUnidadeObrigatoria = "Unidade de medida é obrigatória"
	msgUnidadeInexistente = "Unidade de medida não encontrada"
	msgTextoInvalido      = "Forma farmacêutica e descrição devem ser texto"
)

// MedicationDraft is the medication payload accepted on create and update.
type MedicationDraft struct {
	Nome              types.Optional[string] `json:"nome"`
	FormaFarmaceutica types.Optional[string] `json:"forma_farmaceutica"`
	Descricao         types.Optional[string] `json:"descricao"`
	UnidadeMedidaID   types.Optional[int64]  `json:"unidade_medida_id"`
}

func (d MedicationDraft) Validate(isUpdate bool) []string {
	var errs []string
	if !isUpdate || d.Nome.Present {
		if !d.Nome.Set() || strings.TrimSpace(d.Nome.Value) == "" {
			errs = append(errs, msgNomeObrigatorio)
		}
	}
	if d.Descricao.Set() && utf8.RuneCountInString(strings.TrimSpace(d.Descricao.Value)) > MaxDescricaoLen {
		errs = append(errs, msgDescricaoLonga)
	}
	if !isUpdate || d.UnidadeMedidaID.Present {
		if !d.UnidadeMedidaID.Set() || d.UnidadeMedidaID.Value <= 0 {
			errs = append(errs, msgUnidadeObrigatoria)
		}
	}
	if d.FormaFarmaceutica.Invalid || d.Descricao.Invalid {
		errs = append(errs, msgTextoInvalido)
	}
	return errs
}

func (d MedicationDraft) HasChanges() bool {
	return d.Nome.Present || d.FormaFarmaceutica.Present || d.Descricao.Present || d.UnidadeMedidaID.Present
}

// ListFilters narrows medication listings.
type ListFilters struct {
	Busca      string
	Pagination pagination.Params
}

// MedicationDTO is the JSON projection of a medication with its unit.
type MedicationDTO struct {
	ID                 int64     `json:"id"`
	Nome               string    `json:"nome"`
	FormaFarmaceutica  string    `json:"forma_farmaceutica"`
	Descricao          string    `json:"descricao"`
	UnidadeMedidaID    int64     `json:"unidade_medida_id"`
	UnidadeMedidaNome  *string   `json:"unidade_medida_nome,omitempty"`
	UnidadeMedidaSigla *string   `json:"unidade_medida_sigla,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func newMedicationDTO(rec MedicationRecord) MedicationDTO {
	return MedicationDTO{
		ID:                 rec.ID,
		Nome:               rec.Nome,
		FormaFarmaceutica:  rec.FormaFarmaceutica,
		Descricao:          rec.Descricao,
		UnidadeMedidaID:    rec.UnidadeMedidaID,
		UnidadeMedidaNome:  rec.UnidadeMedidaNome,
		UnidadeMedidaSigla: rec.UnidadeMedidaSigla,
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
	}
}

func newMedication(d MedicationDraft) models.Medication {
	return models.Medication{
		Nome:              strings.TrimSpace(d.Nome.Value),
		FormaFarmaceutica: strings.TrimSpace(d.FormaFarmaceutica.Or("")),
		Descricao:         strings.TrimSpace(d.Descricao.Or("")),
		UnidadeMedidaID:   d.UnidadeMedidaID.Value,
	}
}
