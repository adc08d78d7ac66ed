package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"reflect"

	pkgerrors "github.com/casamais/casamais-backend/pkg/errors"
	"github.com/casamais/casamais-backend/pkg/logger"
	"github.com/casamais/casamais-backend/pkg/types"
)

// MsgNothingUpdated accompanies a partial update that carried no fields.
const MsgNothingUpdated = "Nenhum campo para atualizar"

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data, "")
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, types.Envelope{Success: true, Data: data, Message: message})
}

func WriteCreated(w http.ResponseWriter, data any, message string) {
	WriteSuccessStatus(w, http.StatusCreated, data, message)
}

// WriteMessage answers with a bare success message and no data.
func WriteMessage(w http.ResponseWriter, message string) {
	WriteSuccessStatus(w, http.StatusOK, nil, message)
}

// WriteList answers with a collection and its size. Nil slices are sent as [].
func WriteList(w http.ResponseWriter, data any, total int) {
	if data == nil || (reflect.ValueOf(data).Kind() == reflect.Slice && reflect.ValueOf(data).IsNil()) {
		data = []any{}
	}
	writeJSON(w, http.StatusOK, types.Envelope{Success: true, Data: data, Total: &total})
}

func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	switch typed.Code() {
	case pkgerrors.CodeValidation,
		pkgerrors.CodeForbidden,
		pkgerrors.CodeUnauthorized,
		pkgerrors.CodeNotFound,
		pkgerrors.CodeConflict,
		pkgerrors.CodeRateLimit:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	payload := types.Envelope{
		Success: false,
		Message: msg,
		Code:    string(typed.Code()),
	}

	if meta.DetailsAllowed {
		payload.Errors = typed.Details()
	}

	if logg != nil {
		dump := pkgerrors.Dump(err)

		fields := map[string]any{
			"error":         dump.TopMessage,
			"error_code":    dump.Code,
			"error_chain":   dump.Chain,
			"status":        meta.HTTPStatus,
			"pg_code":       dump.PGCode,
			"pg_detail":     dump.PGDetail,
			"pg_message":    dump.PGMessage,
			"pg_table":      dump.PGTable,
			"pg_constraint": dump.PGConstraint,
		}

		ctx = logg.WithFields(ctx, fields)
		if meta.HTTPStatus >= http.StatusInternalServerError {
			logg.Error(ctx, "request.error", err)
		} else {
			logg.Warn(ctx, "request.error")
		}
	}

	writeJSON(w, meta.HTTPStatus, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
