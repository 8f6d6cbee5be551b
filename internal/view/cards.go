// Package view turns dashboard aggregates into render-ready models: KPI
// cards, run table rows and chart geometry. It does no I/O.
package view

import (
	"fmt"
	"math"

	"github.com/NordCoder/Runboard/internal/domain/run"
	"github.com/NordCoder/Runboard/internal/services/dashboard"
)

type Card struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Value string `json:"value"`
	Hint  string `json:"hint,omitempty"`
}

// Percent renders a [0,1] fraction as a whole percentage.
func Percent(f float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(f*100)))
}

func KPICards(k dashboard.KPIs, d dashboard.DeviceSummary) []Card {
	return []Card{
		{Key: "pass_rate", Title: "Pass rate", Value: Percent(k.PassRate), Hint: fmt.Sprintf("%d runs", k.Total)},
		{Key: "flaky_rate", Title: "Flaky rate", Value: Percent(k.FlakyRate)},
		{Key: "avg_duration", Title: "Avg duration", Value: dashboard.FormatDuration(k.AvgDurationSec)},
		{Key: "runs_today", Title: "Runs today", Value: fmt.Sprintf("%d", k.RunsToday)},
		{Key: "devices", Title: "Devices available", Value: fmt.Sprintf("%d/%d", d.Available, d.Total),
			Hint: fmt.Sprintf("%d busy", d.Busy)},
	}
}

type RunRow struct {
	ID       string `json:"id"`
	Scenario string `json:"scenario"`
	Status   string `json:"status"`
	Badge    string `json:"badge"`
	Device   string `json:"device"`
	Started  string `json:"started"`
	Duration string `json:"duration"`
}

const startedLayout = "Jan 02 15:04"

func RunRows(runs []run.Run) []RunRow {
	out := make([]RunRow, 0, len(runs))
	for _, r := range runs {
		out = append(out, RunRow{
			ID:       r.ID,
			Scenario: r.Scenario,
			Status:   string(r.Status),
			Badge:    Badge(r.Status),
			Device:   r.Device,
			Started:  r.StartedAt.Format(startedLayout),
			Duration: dashboard.FormatDuration(r.DurationSec),
		})
	}
	return out
}

// Badge maps a run status to its badge color class.
func Badge(s run.Status) string {
	switch s {
	case run.StatusPass:
		return "success"
	case run.StatusFail:
		return "danger"
	case run.StatusFlaky:
		return "warning"
	case run.StatusRunning:
		return "info"
	}
	return "neutral"
}
