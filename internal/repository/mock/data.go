package mock

import (
	"encoding/json"
	"time"

	"github.com/NordCoder/Runboard/internal/domain/device"
	"github.com/NordCoder/Runboard/internal/domain/run"
)

func seedDevices() []device.Device {
	return []device.Device{
		{ID: "dev-01", Name: "Pixel 8", Platform: device.PlatformAndroid, OSVersion: "14", Status: device.StatusIdle},
		{ID: "dev-02", Name: "Galaxy S23", Platform: device.PlatformAndroid, OSVersion: "13", Status: device.StatusBusy},
		{ID: "dev-03", Name: "iPhone 15 Pro", Platform: device.PlatformIOS, OSVersion: "17.4", Status: device.StatusIdle},
		{ID: "dev-04", Name: "iPhone 13", Platform: device.PlatformIOS, OSVersion: "16.7", Status: device.StatusReserved},
		{ID: "dev-05", Name: "iPad Air", Platform: device.PlatformIOS, OSVersion: "17.2", Status: device.StatusOffline},
		{ID: "dev-06", Name: "Pixel 6a", Platform: device.PlatformAndroid, OSVersion: "13", Status: device.StatusBusy},
	}
}

type seedRun struct {
	id       string
	scenario string
	status   run.Status
	device   string
	daysAgo  int
	at       time.Duration // offset from local midnight
	duration int64
}

var runSeeds = []seedRun{
	{"run-1042", "Login with SSO", run.StatusRunning, "Galaxy S23", 0, 10*time.Hour + 12*time.Minute, 41},
	{"run-1041", "Checkout happy path", run.StatusPass, "Pixel 8", 0, 9*time.Hour + 30*time.Minute, 184},
	{"run-1040", "Push notification opt-in", run.StatusFlaky, "iPhone 15 Pro", 0, 8*time.Hour + 5*time.Minute, 97},
	{"run-1039", "Search and filter", run.StatusFail, "Pixel 6a", 0, 7*time.Hour + 48*time.Minute, 215},
	{"run-1038", "Checkout happy path", run.StatusPass, "iPhone 13", 1, 17*time.Hour + 20*time.Minute, 176},
	{"run-1037", "Login with SSO", run.StatusFlaky, "Galaxy S23", 1, 15*time.Hour + 2*time.Minute, 133},
	{"run-1036", "Profile photo upload", run.StatusPass, "iPad Air", 1, 11*time.Hour + 45*time.Minute, 248},
	{"run-1035", "Search and filter", run.StatusPass, "Pixel 8", 2, 16*time.Hour + 10*time.Minute, 201},
	{"run-1034", "Push notification opt-in", run.StatusFail, "iPhone 15 Pro", 2, 13*time.Hour + 33*time.Minute, 88},
	{"run-1033", "Checkout happy path", run.StatusFlaky, "Pixel 8", 3, 18*time.Hour + 1*time.Minute, 190},
	{"run-1032", "Onboarding carousel", run.StatusPass, "Pixel 6a", 3, 10*time.Hour + 15*time.Minute, 62},
	{"run-1031", "Login with SSO", run.StatusPass, "iPhone 13", 4, 14*time.Hour + 40*time.Minute, 120},
	{"run-1030", "Profile photo upload", run.StatusFail, "Galaxy S23", 4, 9*time.Hour + 55*time.Minute, 301},
	{"run-1029", "Onboarding carousel", run.StatusPass, "iPhone 15 Pro", 5, 12*time.Hour + 25*time.Minute, 58},
	{"run-1028", "Search and filter", run.StatusFlaky, "Galaxy S23", 5, 10*time.Hour + 5*time.Minute, 222},
	{"run-1027", "Checkout happy path", run.StatusPass, "iPad Air", 6, 16*time.Hour + 50*time.Minute, 169},
	{"run-1026", "Push notification opt-in", run.StatusPass, "Pixel 8", 6, 11*time.Hour + 0*time.Minute, 91},
}

// seedRuns anchors the seeds to now. When now is earlier in the day than
// today's latest seed, today's runs shift back together so the newest one
// starts a minute before now and none lie in the future.
func seedRuns(now time.Time) []run.Run {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	var shift time.Duration
	for _, s := range runSeeds {
		if s.daysAgo != 0 {
			continue
		}
		if late := midnight.Add(s.at).Sub(now.Add(-time.Minute)); late > shift {
			shift = late
		}
	}

	out := make([]run.Run, 0, len(runSeeds))
	for _, s := range runSeeds {
		start := midnight.AddDate(0, 0, -s.daysAgo).Add(s.at)
		if s.daysAgo == 0 {
			start = start.Add(-shift)
		}
		out = append(out, run.Run{
			ID:          s.id,
			Scenario:    s.scenario,
			Status:      s.status,
			Device:      s.device,
			StartedAt:   start,
			DurationSec: s.duration,
		})
	}
	return out
}

func cmd(v map[string]any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

func seedSteps() map[string][]run.Step {
	return map[string][]run.Step{
		"run-1040": {
			{RunID: "run-1040", Index: 0, Status: run.StepOK, LLMCommand: cmd(map[string]any{"action": "launch", "app": "com.acme.shop"})},
			{RunID: "run-1040", Index: 1, Status: run.StepOK, LLMCommand: cmd(map[string]any{"action": "tap", "target": "Enable notifications"}),
				ScreenshotURL: "https://artifacts.example.com/run-1040/1.png"},
			{RunID: "run-1040", Index: 2, Status: run.StepError, LLMCommand: cmd(map[string]any{"action": "assert_visible", "target": "System permission dialog", "timeout_ms": 5000}),
				ScreenshotURL: "https://artifacts.example.com/run-1040/2.png"},
		},
		"run-1041": {
			{RunID: "run-1041", Index: 0, Status: run.StepOK, LLMCommand: cmd(map[string]any{"action": "launch", "app": "com.acme.shop"})},
			{RunID: "run-1041", Index: 1, Status: run.StepOK, LLMCommand: cmd(map[string]any{"action": "tap", "target": "Add to cart"})},
			{RunID: "run-1041", Index: 2, Status: run.StepOK, LLMCommand: cmd(map[string]any{"action": "tap", "target": "Checkout"})},
			{RunID: "run-1041", Index: 3, Status: run.StepOK, LLMCommand: cmd(map[string]any{"action": "assert_visible", "target": "Order confirmed"}),
				ScreenshotURL: "https://artifacts.example.com/run-1041/3.png"},
		},
		"run-1042": {
			{RunID: "run-1042", Index: 0, Status: run.StepOK, LLMCommand: cmd(map[string]any{"action": "launch", "app": "com.acme.shop"})},
			{RunID: "run-1042", Index: 1, Status: run.StepPending, LLMCommand: cmd(map[string]any{"action": "type", "target": "Email", "text": "qa@acme.test"})},
		},
	}
}
