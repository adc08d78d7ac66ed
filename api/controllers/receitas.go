package controllers

import (
	"net/http"

	"github.com/casamais/casamais-backend/api/responses"
	"github.com/casamais/casamais-backend/api/validators"
	"github.com/casamais/casamais-backend/internal/recipes"
	"github.com/casamais/casamais-backend/pkg/logger"
)

func ReceitasList(svc recipes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, list, len(list))
	}
}

func ReceitasGet(svc recipes.Service, logg *logger.Logger) http.HandlerFunc {
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

func ReceitasCreate(svc recipes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft recipes.RecipeDraft
		if err := validators.DecodeDraft(r, &draft); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.Create(r.Context(), draft)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, dto, "Receita criada com sucesso")
	}
}

func ReceitasUpdate(svc recipes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var draft recipes.RecipeDraft
		if err := validators.DecodeDraft(r, &draft); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, changed, err := svc.Update(r.Context(), id, draft)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		msg := "Receita atualizada com sucesso"
		if !changed {
			msg = responses.MsgNothingUpdated
		}
		responses.WriteSuccessStatus(w, http.StatusOK, dto, msg)
	}
}
