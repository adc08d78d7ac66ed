package middleware

import (
	"net/http"

	"github.com/casamais/casamais-backend/api/responses"
	"github.com/casamais/casamais-backend/pkg/enums"
	pkgerrors "github.com/casamais/casamais-backend/pkg/errors"
	"github.com/casamais/casamais-backend/pkg/logger"
)

// RequirePermission rejects callers whose token does not carry tag. It must run after Auth.
func RequirePermission(tag enums.Permission, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := UserIDFromContext(r.Context()); !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Autenticação necessária"))
				return
			}
			if !HasPermission(r.Context(), string(tag)) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "Permissão insuficiente").WithDetails(string(tag)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
