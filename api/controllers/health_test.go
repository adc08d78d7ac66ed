package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/casamais/casamais-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthLive(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}
	rec, env := serve(t, HealthLive(cfg), newRequest(http.MethodGet, "/health/live", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dev", rec.Header().Get("X-CasaMais-Env"))
	assert.JSONEq(t, `{"status":"live"}`, string(env.Data))
}

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}

	rec, env := serve(t, HealthReady(cfg, stubPinger{}, nil, nil), newRequest(http.MethodGet, "/health/ready", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready","checks":{"database":"ok"}}`, string(env.Data))

	rec, env = serve(t, HealthReady(cfg, stubPinger{}, stubPinger{}, nil), newRequest(http.MethodGet, "/health/ready", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready","checks":{"database":"ok","redis":"ok"}}`, string(env.Data))

	rec, _ = serve(t, HealthReady(cfg, stubPinger{err: errors.New("down")}, nil, nil), newRequest(http.MethodGet, "/health/ready", ""))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec, _ = serve(t, HealthReady(cfg, stubPinger{}, stubPinger{err: errors.New("down")}, nil), newRequest(http.MethodGet, "/health/ready", ""))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
