package validators

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/casamais/casamais-backend/pkg/errors"
	"github.com/casamais/casamais-backend/pkg/types"
	"github.com/go-chi/chi/v5"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.Validation(fmt.Sprintf("%s deve ser numérico", key))
	}
	if value < min || value > max {
		return 0, pkgerrors.Validation(fmt.Sprintf("%s deve estar entre %d e %d", key, min, max))
	}
	return value, nil
}

// ParseQueryID reads an optional positive id filter. Absent yields nil.
func ParseQueryID(r *http.Request, key string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return nil, pkgerrors.Validation(fmt.Sprintf("%s deve ser numérico", key))
	}
	return &value, nil
}

// ParseQueryDate reads an optional YYYY-MM-DD filter. Absent yields nil.
func ParseQueryDate(r *http.Request, key string) (*types.Date, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	d, err := types.ParseDate(raw)
	if err != nil {
		return nil, pkgerrors.Validation(fmt.Sprintf("%s deve ser uma data válida (AAAA-MM-DD)", key))
	}
	return &d, nil
}

// ParseQueryBool treats "true", "1" and "sim" as true; anything else is false.
func ParseQueryBool(r *http.Request, key string) bool {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get(key))) {
	case "true", "1", "sim":
		return true
	}
	return false
}

// ParsePathID reads a positive numeric chi URL parameter.
func ParsePathID(r *http.Request, key string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, key))
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, pkgerrors.Validation("ID inválido")
	}
	return value, nil
}
