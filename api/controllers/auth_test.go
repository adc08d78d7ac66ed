package controllers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/casamais/casamais-backend/api/middleware"
	"github.com/casamais/casamais-backend/internal/auth"
	pkgerrors "github.com/casamais/casamais-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	resp *auth.LoginResponse
	err  error

	gotReq      auth.LoginRequest
	gotAccessID string
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	s.gotReq = req
	return s.resp, s.err
}

func (s *stubAuthService) Logout(ctx context.Context, accessID string) error {
	s.gotAccessID = accessID
	return s.err
}

func TestAuthLoginSuccess(t *testing.T) {
	svc := &stubAuthService{resp: &auth.LoginResponse{AccessToken: "access-token", TokenType: "Bearer", ExpiresAt: time.Now()}}
	rec, env := serve(t, AuthLogin(svc, nil), newRequest(http.MethodPost, "/api/auth/login", `{"email":"ana@casamais.org","senha":"Segredo#1"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "access-token", rec.Header().Get("X-CM-Token"))
	assert.Equal(t, "ana@casamais.org", svc.gotReq.Email)
}

func TestAuthLoginValidation(t *testing.T) {
	svc := &stubAuthService{}
	rec, env := serve(t, AuthLogin(svc, nil), newRequest(http.MethodPost, "/api/auth/login", `{"email":"not-an-email"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, env.Errors)
	assert.Empty(t, svc.gotReq.Email)
}

func TestAuthLoginInvalidCredentials(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "E-mail ou senha inválidos")}
	rec, env := serve(t, AuthLogin(svc, nil), newRequest(http.MethodPost, "/api/auth/login", `{"email":"ana@casamais.org","senha":"errada"}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "E-mail ou senha inválidos", env.Message)
}

func TestAuthLogout(t *testing.T) {
	svc := &stubAuthService{}
	req := newRequest(http.MethodPost, "/api/auth/logout", "")
	req = req.WithContext(middleware.WithIdentity(req.Context(), 1, "admin", nil, "jti-1"))

	rec, _ := serve(t, AuthLogout(svc, nil), req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jti-1", svc.gotAccessID)
}

func TestAuthLogoutWithoutIdentity(t *testing.T) {
	svc := &stubAuthService{}
	rec, _ := serve(t, AuthLogout(svc, nil), newRequest(http.MethodPost, "/api/auth/logout", ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, svc.gotAccessID)
}
