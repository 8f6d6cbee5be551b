package run

import "github.com/NordCoder/Runboard/internal/domain/device"

// Result is the event a CI pipeline publishes when a run is reported.
// Device is optional when the device is already registered.
type Result struct {
	Run    Run            `json:"run"`
	Device *device.Device `json:"device,omitempty"`
	Steps  []Step         `json:"steps,omitempty"`
}
