package run_ingestor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/NordCoder/Runboard/internal/domain"
	"github.com/NordCoder/Runboard/internal/domain/device"
	"github.com/NordCoder/Runboard/internal/domain/run"
	"github.com/NordCoder/Runboard/internal/obs/retry"
	"github.com/NordCoder/Runboard/internal/repository/postgres"
	"github.com/google/uuid"
)

// Handler stores one CI run result: the run, its steps and, when present,
// the device it ran on.
type Handler struct {
	Runs       run.Repo
	Steps      run.StepRepo
	Devices    device.Repo
	Transactor postgres.Transactor
	Retry      retry.Policy
	NewID      func() string
}

// HandleResult validates res and writes it in one transaction. Invalid
// results come back as domain validation errors and are never retried.
func (h *Handler) HandleResult(ctx context.Context, key []byte, res *run.Result) error {
	if err := h.normalize(key, res); err != nil {
		return err
	}
	if err := validateResult(res); err != nil {
		return err
	}

	return retry.Do(ctx, func(ctx context.Context) error {
		return h.Transactor.WithTx(ctx, func(txCtx context.Context) error {
			return h.store(txCtx, res)
		})
	}, h.Retry)
}

func (h *Handler) normalize(key []byte, res *run.Result) error {
	if res.Run.ID == "" {
		if k := strings.TrimSpace(string(key)); k != "" {
			res.Run.ID = k
		} else {
			res.Run.ID = h.newID()
		}
	}
	if res.Device != nil && res.Run.Device == "" {
		res.Run.Device = res.Device.Name
	}
	for i := range res.Steps {
		if res.Steps[i].RunID == "" {
			res.Steps[i].RunID = res.Run.ID
		}
	}
	slices.SortStableFunc(res.Steps, func(a, b run.Step) int { return a.Index - b.Index })
	if res.Device != nil && res.Device.Name != res.Run.Device {
		return domain.Invalid("run", res.Run.ID,
			fmt.Errorf("device %q does not match attached device %q", res.Run.Device, res.Device.Name))
	}
	return nil
}

func (h *Handler) newID() string {
	if h.NewID != nil {
		return h.NewID()
	}
	return uuid.NewString()
}

func validateResult(res *run.Result) error {
	if res.Device != nil {
		if err := res.Device.Validate(); err != nil {
			return err
		}
	}
	if err := res.Run.Validate(); err != nil {
		return err
	}
	return run.ValidateSteps(res.Run.ID, res.Steps)
}

func (h *Handler) store(ctx context.Context, res *run.Result) error {
	if res.Device != nil {
		if err := h.Devices.Upsert(ctx, res.Device); err != nil {
			return storeErr(res.Run.ID, fmt.Errorf("upsert device: %w", err))
		}
	} else if _, err := h.Devices.GetByName(ctx, res.Run.Device); err != nil {
		if errors.Is(err, device.ErrNotFound) {
			return retry.Permanent(domain.Invalid("run", res.Run.ID,
				fmt.Errorf("device %q: %w", res.Run.Device, device.ErrNotFound)))
		}
		return fmt.Errorf("get device: %w", err)
	}

	if err := h.Runs.Upsert(ctx, &res.Run); err != nil {
		return storeErr(res.Run.ID, fmt.Errorf("upsert run: %w", err))
	}
	if err := h.Steps.ReplaceForRun(ctx, res.Run.ID, res.Steps); err != nil {
		return storeErr(res.Run.ID, fmt.Errorf("replace steps: %w", err))
	}
	return nil
}

// storeErr turns constraint violations into permanent validation errors.
func storeErr(runID string, err error) error {
	if errors.Is(err, postgres.ErrConstraint) {
		return retry.Permanent(domain.Invalid("run", runID, err))
	}
	return err
}
