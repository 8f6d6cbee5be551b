package run

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NordCoder/Runboard/internal/domain"
)

var (
	ErrUnknownStatus = errors.New("unknown run status")
	ErrNotFound      = errors.New("run not found")
)

type Status string

const (
	StatusPass    Status = "PASS"
	StatusFail    Status = "FAIL"
	StatusFlaky   Status = "FLAKY"
	StatusRunning Status = "RUNNING"
)

var Statuses = []Status{StatusPass, StatusFail, StatusFlaky, StatusRunning}

// ParseStatus matches s against the run statuses ignoring case.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

func (s Status) Valid() bool {
	switch s {
	case StatusPass, StatusFail, StatusFlaky, StatusRunning:
		return true
	}
	return false
}

// Run is one execution of a scenario on a device. Device holds the device name.
type Run struct {
	ID          string    `json:"id" validate:"required"`
	Scenario    string    `json:"scenario,omitempty"`
	Status      Status    `json:"status" validate:"required"`
	Device      string    `json:"device" validate:"required"`
	StartedAt   time.Time `json:"started_at" validate:"required"`
	DurationSec int64     `json:"duration_sec" validate:"gte=0"`
}

func (r *Run) Validate() error {
	if err := domain.Struct("run", r.ID, r); err != nil {
		return err
	}
	if !r.Status.Valid() {
		return domain.Invalid("run", r.ID, fmt.Errorf("%w: %q", ErrUnknownStatus, r.Status))
	}
	return nil
}

type StepStatus string

const (
	StepOK      StepStatus = "ok"
	StepError   StepStatus = "error"
	StepPending StepStatus = "pending"
)

func (s StepStatus) Valid() bool {
	switch s {
	case StepOK, StepError, StepPending:
		return true
	}
	return false
}

// Step is one agent action inside a run; Index is 0-based and sequential.
type Step struct {
	RunID         string          `json:"run_id" validate:"required"`
	Index         int             `json:"index" validate:"gte=0"`
	Status        StepStatus      `json:"status" validate:"required"`
	LLMCommand    json.RawMessage `json:"llm_command,omitempty"`
	ScreenshotURL string          `json:"screenshot_url,omitempty" validate:"omitempty,url"`
}

func (s *Step) Validate() error {
	id := fmt.Sprintf("%s#%d", s.RunID, s.Index)
	if err := domain.Struct("step", id, s); err != nil {
		return err
	}
	if !s.Status.Valid() {
		return domain.Invalid("step", id, fmt.Errorf("unknown step status %q", s.Status))
	}
	if len(s.LLMCommand) > 0 && !json.Valid(s.LLMCommand) {
		return domain.Invalid("step", id, errors.New("llm_command is not valid json"))
	}
	return nil
}

// ValidateSteps checks every step of runID and that indexes run 0..n-1 in order.
func ValidateSteps(runID string, steps []Step) error {
	for i := range steps {
		if steps[i].RunID != runID {
			return domain.Invalid("step", steps[i].RunID, fmt.Errorf("belongs to run %q, want %q", steps[i].RunID, runID))
		}
		if err := steps[i].Validate(); err != nil {
			return err
		}
		if steps[i].Index != i {
			return domain.Invalid("step", runID, fmt.Errorf("index %d at position %d", steps[i].Index, i))
		}
	}
	return nil
}
