package controllers

import (
	"net/http"

	"github.com/casamais/casamais-backend/api/validators"
	"github.com/casamais/casamais-backend/pkg/pagination"
)

// parsePagination reads the optional ?pagina and ?limite pair. Omitting
// ?pagina returns the full list.
func parsePagination(r *http.Request) (pagination.Params, error) {
	page, err := validators.ParseQueryInt(r, "pagina", 0, 1, 1_000_000)
	if err != nil {
		return pagination.Params{}, err
	}
	limit, err := validators.ParseQueryInt(r, "limite", 0, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Page: page, Limit: limit}, nil
}
