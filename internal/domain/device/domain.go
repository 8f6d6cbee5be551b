package device

import (
	"errors"
	"fmt"

	"github.com/NordCoder/Runboard/internal/domain"
)

var ErrNotFound = errors.New("device not found")

type Platform string

const (
	PlatformIOS     Platform = "iOS"
	PlatformAndroid Platform = "Android"
)

type Status string

const (
	StatusIdle     Status = "Idle"
	StatusBusy     Status = "Busy"
	StatusReserved Status = "Reserved"
	StatusOffline  Status = "Offline"
)

type Device struct {
	ID        string   `json:"id" validate:"required"`
	Name      string   `json:"name" validate:"required"`
	Platform  Platform `json:"platform" validate:"required"`
	OSVersion string   `json:"os_version"`
	Status    Status   `json:"status" validate:"required"`
}

func (d *Device) Validate() error {
	if err := domain.Struct("device", d.ID, d); err != nil {
		return err
	}
	switch d.Platform {
	case PlatformIOS, PlatformAndroid:
	default:
		return domain.Invalid("device", d.ID, fmt.Errorf("unknown platform %q", d.Platform))
	}
	switch d.Status {
	case StatusIdle, StatusBusy, StatusReserved, StatusOffline:
	default:
		return domain.Invalid("device", d.ID, fmt.Errorf("unknown status %q", d.Status))
	}
	return nil
}
