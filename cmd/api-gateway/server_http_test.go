package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	config "github.com/NordCoder/Runboard/internal/config/api-gateway"
	"github.com/NordCoder/Runboard/internal/repository/mock"
	"github.com/NordCoder/Runboard/internal/services/api-gateway/runs"
	"github.com/NordCoder/Runboard/internal/services/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testHandler(t *testing.T, ping func(context.Context) error) http.Handler {
	t.Helper()
	store, err := mock.Load(time.Now())
	require.NoError(t, err)
	cfg := &config.Config{Server: config.Server{CORSOrigins: []string{"http://ui.local"}}}
	srv, err := buildHTTPServer(cfg, zaptest.NewLogger(t), dashboard.NewUsecase(store, 7, nil), ping)
	require.NoError(t, err)
	return srv.Handler
}

func TestHTTP_Healthz(t *testing.T) {
	ok := testHandler(t, func(context.Context) error { return nil })
	rec := httptest.NewRecorder()
	ok.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	down := testHandler(t, func(context.Context) error { return errors.New("down") })
	rec = httptest.NewRecorder()
	down.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHTTP_RoutesAndCORS(t *testing.T) {
	h := testHandler(t, func(context.Context) error { return nil })

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	req.Header.Set("Origin", "http://ui.local")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://ui.local", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get(runs.RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/v1/devices", nil)
	req.Header.Set("Origin", "http://evil.local")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
