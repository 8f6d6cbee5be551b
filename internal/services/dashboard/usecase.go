package dashboard

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/NordCoder/Runboard/internal/domain/device"
	"github.com/NordCoder/Runboard/internal/domain/run"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Source supplies the current run and device collections.
type Source interface {
	ListRuns(ctx context.Context) ([]run.Run, error)
	GetRun(ctx context.Context, id string) (*run.Run, error)
	ListDevices(ctx context.Context) ([]device.Device, error)
	ListSteps(ctx context.Context, runID string) ([]run.Step, error)
	Ping(ctx context.Context) error
}

type Overview struct {
	Runs          []run.Run     `json:"runs"`
	KPIs          KPIs          `json:"kpis"`
	Devices       DeviceSummary `json:"devices"`
	FlakyByDevice []DeviceShare `json:"flaky_by_device"`
	Trend         TrendSeries   `json:"trend"`
	GeneratedAt   time.Time     `json:"generated_at"`
}

type Usecase struct {
	src       Source
	trendDays int
	clk       func() time.Time
}

func NewUsecase(src Source, trendDays int, clk func() time.Time) *Usecase {
	if clk == nil {
		clk = time.Now
	}
	if trendDays <= 0 {
		trendDays = DefaultTrendDays
	}
	return &Usecase{src: src, trendDays: trendDays, clk: clk}
}

func (u *Usecase) Now() time.Time { return u.clk() }

func (u *Usecase) Runs(ctx context.Context, opts FilterOptions) ([]run.Run, error) {
	ctx, span := otel.Tracer("dashboard.uc").Start(ctx, "dashboard.runs", trace.WithAttributes(filterAttrs(opts)...))
	defer span.End()

	all, err := u.src.ListRuns(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list runs: %w", err)
	}
	out := Filter(all, opts)
	span.SetAttributes(attribute.Int("runs.total", len(all)), attribute.Int("runs.matched", len(out)))
	return out, nil
}

func (u *Usecase) Devices(ctx context.Context) ([]device.Device, error) {
	list, err := u.src.ListDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	return list, nil
}

// Steps returns the steps of runID in display order, or run.ErrNotFound.
func (u *Usecase) Steps(ctx context.Context, runID string) (*run.Run, []run.Step, error) {
	r, err := u.src.GetRun(ctx, runID)
	if err != nil {
		return nil, nil, err
	}
	steps, err := u.src.ListSteps(ctx, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("list steps: %w", err)
	}
	slices.SortStableFunc(steps, func(a, b run.Step) int { return a.Index - b.Index })
	return r, steps, nil
}

// Overview filters the runs once and derives every dashboard aggregate from
// the filtered set. The device summary always covers the whole registry.
func (u *Usecase) Overview(ctx context.Context, opts FilterOptions) (*Overview, error) {
	ctx, span := otel.Tracer("dashboard.uc").Start(ctx, "dashboard.overview", trace.WithAttributes(filterAttrs(opts)...))
	defer span.End()

	runs, err := u.Runs(ctx, opts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	devices, err := u.Devices(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	now := u.clk()
	return &Overview{
		Runs:          runs,
		KPIs:          Summarize(runs, now),
		Devices:       SummarizeDevices(devices),
		FlakyByDevice: FlakyByDevice(runs, devices),
		Trend:         Trend(runs, u.trendDays, now),
		GeneratedAt:   now,
	}, nil
}

func (u *Usecase) Ping(ctx context.Context) error { return u.src.Ping(ctx) }

func filterAttrs(opts FilterOptions) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("filter.status", opts.Status),
		attribute.String("filter.device", opts.Device),
	}
	if opts.DateFrom != nil {
		attrs = append(attrs, attribute.String("filter.from", opts.DateFrom.Format(time.RFC3339)))
	}
	if opts.DateTo != nil {
		attrs = append(attrs, attribute.String("filter.to", opts.DateTo.Format(time.RFC3339)))
	}
	return attrs
}
