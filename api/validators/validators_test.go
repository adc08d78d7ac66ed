package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/casamais/casamais-backend/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginBody struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

func TestDecodeJSONBodyValidatesTags(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope"}`))
	var dest loginBody
	err := DecodeJSONBody(req, &dest)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Contains(t, typed.Details(), "email deve ser um e-mail válido")
	assert.Contains(t, typed.Details(), "senha é obrigatório")
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.com","senha":"x","extra":1}`))
	var dest loginBody
	assert.True(t, pkgerrors.IsCode(DecodeJSONBody(req, &dest), pkgerrors.CodeValidation))
}

func TestDecodeDraftIgnoresUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.com","produto_nome":"Bolo"}`))
	var dest loginBody
	require.NoError(t, DecodeDraft(req, &dest))
	assert.Equal(t, "a@b.com", dest.Email)
}

func TestDecodeDraftEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	var dest loginBody
	err := DecodeDraft(req, &dest)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestParseQueryHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?produto_id=3&data_inicio=2024-01-01&incluir_inativos=true&bad=x", nil)

	id, err := ParseQueryID(req, "produto_id")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(3), *id)

	missing, err := ParseQueryID(req, "usuario_id")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = ParseQueryID(req, "bad")
	assert.Error(t, err)

	d, err := ParseQueryDate(req, "data_inicio")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", d.String())

	_, err = ParseQueryDate(req, "bad")
	assert.Error(t, err)

	assert.True(t, ParseQueryBool(req, "incluir_inativos"))
	assert.False(t, ParseQueryBool(req, "bad"))
}

func TestParsePathID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/vendas/9", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "9")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	id, err := ParsePathID(req, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)

	rctx.URLParams = chi.RouteParams{}
	rctx.URLParams.Add("id", "abc")
	_, err = ParsePathID(req, "id")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestBearerToken(t *testing.T) {
	token, err := BearerToken("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = BearerToken("Basic xyz")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = BearerToken("Bearer ")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

