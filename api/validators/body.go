package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	pkgerrors "github.com/casamais/casamais-backend/pkg/errors"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// DecodeJSONBody strictly decodes the body and runs struct tag validation.
func DecodeJSONBody(r *http.Request, dest any) error {
	if err := decode(r, dest, true); err != nil {
		return err
	}
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// DecodeDraft decodes a write payload whose type validates itself. Unknown
// fields are ignored because clients echo back whole records on update.
func DecodeDraft(r *http.Request, dest any) error {
	return decode(r, dest, false)
}

func decode(r *http.Request, dest any, strict bool) error {
	if r.Body == nil {
		return pkgerrors.Validation("Corpo da requisição é obrigatório")
	}
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	if strict {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return pkgerrors.Validation("Corpo da requisição é obrigatório")
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Dados inválidos").WithDetails("JSON inválido: " + err.Error())
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		details := make([]string, 0, len(errs))
		for _, fieldErr := range errs {
			details = append(details, fmt.Sprintf("%s %s", fieldErr.Field(), validationMessage(fieldErr)))
		}
		return pkgerrors.Validation(details...)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Dados inválidos")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "é obrigatório"
	case "min":
		return fmt.Sprintf("deve ter no mínimo %s", fe.Param())
	case "max":
		return fmt.Sprintf("deve ter no máximo %s", fe.Param())
	case "email":
		return "deve ser um e-mail válido"
	}
	return "é inválido"
}
