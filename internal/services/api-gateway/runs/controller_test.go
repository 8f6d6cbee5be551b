package runs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NordCoder/Runboard/internal/domain/device"
	"github.com/NordCoder/Runboard/internal/domain/run"
	"github.com/NordCoder/Runboard/internal/repository/mock"
	"github.com/NordCoder/Runboard/internal/services/dashboard"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var now = time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)

func newServer(t *testing.T, uc Usecase) *httptest.Server {
	t.Helper()
	mux := runtime.NewServeMux()
	require.NoError(t, NewController(zaptest.NewLogger(t), uc, time.UTC).Register(mux))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func mockUsecase(t *testing.T) *dashboard.Usecase {
	t.Helper()
	store, err := mock.Load(now)
	require.NoError(t, err)
	return dashboard.NewUsecase(store, 7, func() time.Time { return now })
}

func get(t *testing.T, url string, dst any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if dst != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	}
	return resp
}

func TestListRuns_Filtered(t *testing.T) {
	srv := newServer(t, mockUsecase(t))

	var body runsResponse
	resp := get(t, srv.URL+"/v1/runs?status=FLAKY&device=Galaxy%20S23", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
	require.NotZero(t, body.Total)
	assert.Len(t, body.Runs, body.Total)
	for _, r := range body.Runs {
		assert.Equal(t, "FLAKY", r.Status)
		assert.Equal(t, "warning", r.Badge)
		assert.Equal(t, "Galaxy S23", r.Device)
	}
}

func TestListRuns_InvertedRangeIsEmpty(t *testing.T) {
	srv := newServer(t, mockUsecase(t))

	var body runsResponse
	resp := get(t, srv.URL+"/v1/runs?from=2026-03-10&to=2026-03-01", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, body.Total)
	assert.NotNil(t, body.Runs)
}

func TestListRuns_BadDate(t *testing.T) {
	srv := newServer(t, mockUsecase(t))

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/v1/runs?from=yesterday", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "req-1", resp.Header.Get(RequestIDHeader))
	assert.Equal(t, "req-1", body.RequestID)
	assert.Contains(t, body.Error, "invalid filter")
}

func TestRunSteps(t *testing.T) {
	srv := newServer(t, mockUsecase(t))

	var body stepsResponse
	resp := get(t, srv.URL+"/v1/runs/run-1041/steps", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "run-1041", body.Run.ID)
	require.Len(t, body.Steps, 4)

	resp = get(t, srv.URL+"/v1/runs/run-0000/steps", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDevices(t *testing.T) {
	srv := newServer(t, mockUsecase(t))

	var body devicesResponse
	get(t, srv.URL+"/v1/devices", &body)
	assert.Len(t, body.Devices, 6)
	assert.Equal(t, 6, body.Summary.Total)
}

func TestDashboard(t *testing.T) {
	srv := newServer(t, mockUsecase(t))

	var body dashboardResponse
	resp := get(t, srv.URL+"/v1/dashboard", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body.Cards, 5)
	assert.Equal(t, 4, body.KPIs.RunsToday)
	assert.Len(t, body.Trend.Series.Labels, 7)
	assert.Equal(t, "Tue", body.Trend.Series.Labels[6])
	assert.Len(t, body.Trend.Chart.Lines, 3)
	assert.NotEmpty(t, body.FlakyByDevice.Donut)
	assert.True(t, body.GeneratedAt.Equal(now))
}

type brokenUC struct{}

func (brokenUC) Runs(context.Context, dashboard.FilterOptions) ([]run.Run, error) {
	return nil, errors.New("db gone")
}
func (brokenUC) Devices(context.Context) ([]device.Device, error) { return nil, errors.New("db gone") }
func (brokenUC) Steps(context.Context, string) (*run.Run, []run.Step, error) {
	return nil, nil, errors.New("db gone")
}
func (brokenUC) Overview(context.Context, dashboard.FilterOptions) (*dashboard.Overview, error) {
	return nil, errors.New("db gone")
}

func TestInternalErrorsAreOpaque(t *testing.T) {
	srv := newServer(t, brokenUC{})

	var body errorResponse
	resp := get(t, srv.URL+"/v1/dashboard", &body)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal error", body.Error)
}
