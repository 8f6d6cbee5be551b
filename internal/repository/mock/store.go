// Package mock holds the static run and device collections the dashboard
// serves when no database is configured.
package mock

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/NordCoder/Runboard/internal/domain"
	"github.com/NordCoder/Runboard/internal/domain/device"
	"github.com/NordCoder/Runboard/internal/domain/run"
)

var (
	errDuplicateID   = errors.New("duplicate id")
	errDuplicateName = errors.New("duplicate device name")
)

// Store is read-only after Load; every accessor hands out copies.
type Store struct {
	runs    []run.Run
	devices []device.Device
	steps   map[string][]run.Step
}

// Load builds the seed collections with timestamps relative to now and
// validates them, including that every run names a registered device.
func Load(now time.Time) (*Store, error) {
	return New(seedRuns(now), seedDevices(), seedSteps())
}

// New validates the given collections and wraps them in a Store.
func New(runs []run.Run, devices []device.Device, steps map[string][]run.Step) (*Store, error) {
	names := make(map[string]struct{}, len(devices))
	ids := make(map[string]struct{}, len(devices))
	for i := range devices {
		if err := devices[i].Validate(); err != nil {
			return nil, err
		}
		if _, dup := ids[devices[i].ID]; dup {
			return nil, domain.Invalid("device", devices[i].ID, errDuplicateID)
		}
		if _, dup := names[devices[i].Name]; dup {
			return nil, domain.Invalid("device", devices[i].ID, fmt.Errorf("%w: %q", errDuplicateName, devices[i].Name))
		}
		ids[devices[i].ID] = struct{}{}
		names[devices[i].Name] = struct{}{}
	}

	runIDs := make(map[string]struct{}, len(runs))
	for i := range runs {
		r := &runs[i]
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if _, dup := runIDs[r.ID]; dup {
			return nil, domain.Invalid("run", r.ID, errDuplicateID)
		}
		runIDs[r.ID] = struct{}{}
		if _, ok := names[r.Device]; !ok {
			return nil, domain.Invalid("run", r.ID, fmt.Errorf("%w: %q", device.ErrNotFound, r.Device))
		}
	}

	sorted := make(map[string][]run.Step, len(steps))
	for runID, list := range steps {
		if _, ok := runIDs[runID]; !ok {
			return nil, domain.Invalid("step", runID, run.ErrNotFound)
		}
		cp := slices.Clone(list)
		slices.SortStableFunc(cp, func(a, b run.Step) int { return a.Index - b.Index })
		if err := run.ValidateSteps(runID, cp); err != nil {
			return nil, err
		}
		sorted[runID] = cp
	}

	return &Store{
		runs:    slices.Clone(runs),
		devices: slices.Clone(devices),
		steps:   sorted,
	}, nil
}

func (s *Store) ListRuns(_ context.Context) ([]run.Run, error) {
	return slices.Clone(s.runs), nil
}

func (s *Store) GetRun(_ context.Context, id string) (*run.Run, error) {
	for i := range s.runs {
		if s.runs[i].ID == id {
			r := s.runs[i]
			return &r, nil
		}
	}
	return nil, run.ErrNotFound
}

func (s *Store) ListDevices(_ context.Context) ([]device.Device, error) {
	return slices.Clone(s.devices), nil
}

func (s *Store) ListSteps(_ context.Context, runID string) ([]run.Step, error) {
	steps := s.steps[runID]
	out := make([]run.Step, len(steps))
	for i, st := range steps {
		st.LLMCommand = slices.Clone(st.LLMCommand)
		out[i] = st
	}
	return out, nil
}

func (s *Store) Ping(_ context.Context) error { return nil }
