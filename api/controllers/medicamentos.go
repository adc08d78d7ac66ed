package controllers

import (
	"net/http"
	"strings"

	"github.com/casamais/casamais-backend/api/responses"
	"github.com/casamais/casamais-backend/api/validators"
	"github.com/casamais/casamais-backend/internal/medications"
	"github.com/casamais/casamais-backend/pkg/logger"
)

func MedicamentosList(svc medications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := parsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters := medications.ListFilters{
			Busca:      strings.TrimSpace(r.URL.Query().Get("busca")),
			Pagination: page,
		}

		list, total, err := svc.List(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, list, int(total))
	}
}

func MedicamentosGet(svc medications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func MedicamentosCreate(svc medications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft medications.MedicationDraft
		if err := validators.DecodeDraft(r, &draft); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.Create(r.Context(), draft)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, dto, "Medicamento cadastrado com sucesso")
	}
}

func MedicamentosUpdate(svc medications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var draft medications.MedicationDraft
		if err := validators.DecodeDraft(r, &draft); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, changed, err := svc.Update(r.Context(), id, draft)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		msg := "Medicamento atualizado com sucesso"
		if !changed {
			msg = responses.MsgNothingUpdated
		}
		responses.WriteSuccessStatus(w, http.StatusOK, dto, msg)
	}
}

func MedicamentosDelete(svc medications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Medicamento excluído com sucesso")
	}
}
