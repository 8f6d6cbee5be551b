package postgres

import (
	"context"

	"github.com/NordCoder/Runboard/internal/domain/device"
	"github.com/NordCoder/Runboard/internal/domain/run"
)

// Source serves the dashboard from the database.
type Source struct {
	db      *DB
	runs    *RunRepo
	devices *DeviceRepo
	steps   *StepRepo
}

func NewSource(db *DB) *Source {
	return &Source{db: db, runs: NewRunRepo(db), devices: NewDeviceRepo(db), steps: NewStepRepo(db)}
}

func (s *Source) ListRuns(ctx context.Context) ([]run.Run, error) { return s.runs.List(ctx) }

// GetRun reports a missing run as run.ErrNotFound.
func (s *Source) GetRun(ctx context.Context, id string) (*run.Run, error) {
	return s.runs.GetByID(ctx, id)
}

func (s *Source) ListDevices(ctx context.Context) ([]device.Device, error) {
	return s.devices.List(ctx)
}

func (s *Source) ListSteps(ctx context.Context, runID string) ([]run.Step, error) {
	return s.steps.ListByRun(ctx, runID)
}

func (s *Source) Ping(ctx context.Context) error { return s.db.Ping(ctx) }
