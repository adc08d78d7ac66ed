package controllers

import (
	"net/http"

	"github.com/casamais/casamais-backend/api/responses"
	"github.com/casamais/casamais-backend/internal/units"
	"github.com/casamais/casamais-backend/pkg/logger"
)

func UnidadesList(svc units.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, list, len(list))
	}
}
