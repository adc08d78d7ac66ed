package controllers

import (
	"net/http"

	"github.com/casamais/casamais-backend/api/middleware"
	"github.com/casamais/casamais-backend/api/responses"
	"github.com/casamais/casamais-backend/api/validators"
	"github.com/casamais/casamais-backend/internal/sales"
	"github.com/casamais/casamais-backend/pkg/logger"
	"github.com/casamais/casamais-backend/pkg/types"
)

// VendasList returns sales filtered by ?data_inicio, ?data_fim and ?produto_id.
func VendasList(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			filters sales.Filters
			err     error
		)
		if filters.DataInicio, err = validators.ParseQueryDate(r, "data_inicio"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.DataFim, err = validators.ParseQueryDate(r, "data_fim"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.ProdutoID, err = validators.ParseQueryID(r, "produto_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, list, len(list))
	}
}

func VendasGet(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sale, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sale)
	}
}

// VendasCreate records a sale attributed to the authenticated caller.
func VendasCreate(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft sales.SaleDraft
		if err := validators.DecodeDraft(r, &draft); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
			draft.UsuarioID = types.Some(userID)
		}

		sale, err := svc.Create(r.Context(), draft)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, sale, "Venda registrada com sucesso")
	}
}

func VendasUpdate(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var draft sales.SaleDraft
		if err := validators.DecodeDraft(r, &draft); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		// The creator never changes on update.
		draft.UsuarioID = types.Optional[int64]{}

		sale, changed, err := svc.Update(r.Context(), id, draft)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !changed {
			responses.WriteSuccessStatus(w, http.StatusOK, sale, responses.MsgNothingUpdated)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusOK, sale, "Venda atualizada com sucesso")
	}
}

func VendasDelete(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
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
		responses.WriteMessage(w, "Venda excluída com sucesso")
	}
}

// VendasReport aggregates sales per day between ?data_inicio and ?data_fim.
func VendasReport(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, err := validators.ParseQueryDate(r, "data_inicio")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		end, err := validators.ParseQueryDate(r, "data_fim")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.Report(r.Context(), start, end)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
