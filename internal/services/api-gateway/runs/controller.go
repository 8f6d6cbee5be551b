// Package runs serves the dashboard REST API.
package runs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/NordCoder/Runboard/internal/domain/device"
	"github.com/NordCoder/Runboard/internal/domain/run"
	"github.com/NordCoder/Runboard/internal/obs"
	"github.com/NordCoder/Runboard/internal/services/dashboard"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

type Usecase interface {
	Runs(ctx context.Context, opts dashboard.FilterOptions) ([]run.Run, error)
	Devices(ctx context.Context) ([]device.Device, error)
	Steps(ctx context.Context, runID string) (*run.Run, []run.Step, error)
	Overview(ctx context.Context, opts dashboard.FilterOptions) (*dashboard.Overview, error)
}

type Controller struct {
	log *zap.Logger
	uc  Usecase
	loc *time.Location
}

// NewController parses date-only filters in loc. A nil loc means time.Local.
func NewController(log *zap.Logger, uc Usecase, loc *time.Location) *Controller {
	if loc == nil {
		loc = time.Local
	}
	return &Controller{log: log.With(zap.String("component", "runs.http")), uc: uc, loc: loc}
}

type route struct {
	method  string
	pattern string
	name    string
	h       func(w http.ResponseWriter, r *http.Request, params map[string]string) error
}

func (c *Controller) Register(mux *runtime.ServeMux) error {
	routes := []route{
		{http.MethodGet, "/v1/runs", "runs.list", c.listRuns},
		{http.MethodGet, "/v1/runs/{id}/steps", "runs.steps", c.runSteps},
		{http.MethodGet, "/v1/devices", "devices.list", c.listDevices},
		{http.MethodGet, "/v1/dashboard", "dashboard.overview", c.overview},
	}
	for _, rt := range routes {
		if err := mux.HandlePath(rt.method, rt.pattern, c.wrap(rt)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) filterOptions(r *http.Request) (dashboard.FilterOptions, error) {
	q := r.URL.Query()
	return dashboard.ParseFilterOptions(q.Get("status"), q.Get("device"), q.Get("from"), q.Get("to"), c.loc)
}

func (c *Controller) listRuns(w http.ResponseWriter, r *http.Request, _ map[string]string) error {
	opts, err := c.filterOptions(r)
	if err != nil {
		return err
	}
	list, err := c.uc.Runs(r.Context(), opts)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, runsResponse{Runs: toRunDTOs(list), Total: len(list)})
	return nil
}

func (c *Controller) runSteps(w http.ResponseWriter, r *http.Request, params map[string]string) error {
	rr, steps, err := c.uc.Steps(r.Context(), params["id"])
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, stepsResponse{Run: toRunDTOs([]run.Run{*rr})[0], Steps: steps})
	return nil
}

func (c *Controller) listDevices(w http.ResponseWriter, r *http.Request, _ map[string]string) error {
	list, err := c.uc.Devices(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, devicesResponse{Devices: list, Summary: dashboard.SummarizeDevices(list)})
	return nil
}

func (c *Controller) overview(w http.ResponseWriter, r *http.Request, _ map[string]string) error {
	opts, err := c.filterOptions(r)
	if err != nil {
		return err
	}
	ov, err := c.uc.Overview(r.Context(), opts)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, toDashboard(ov))
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.code = code
	s.ResponseWriter.WriteHeader(code)
}

// wrap adds the request id, access log, metrics and error mapping.
func (c *Controller) wrap(rt route) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		start := time.Now()
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		r = r.WithContext(obs.WithRequestID(r.Context(), id))

		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		log := obs.WithTrace(r.Context(), c.log)

		if err := rt.h(rec, r, params); err != nil {
			code, msg := httpError(err)
			if code >= http.StatusInternalServerError {
				log.Error("request failed", zap.String("route", rt.name), zap.Error(err))
			}
			writeJSON(rec, code, errorResponse{Error: msg, RequestID: id})
		}

		took := time.Since(start)
		obs.ObserveHTTP(rt.name, rec.code, took)
		log.Info("http",
			zap.String("route", rt.name),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("code", rec.code),
			zap.Duration("took", took),
		)
	}
}

func httpError(err error) (int, string) {
	switch {
	case errors.Is(err, dashboard.ErrInvalidFilter):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, run.ErrNotFound):
		return http.StatusNotFound, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
