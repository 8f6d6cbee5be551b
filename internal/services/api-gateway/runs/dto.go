package runs

import (
	"time"

	"github.com/NordCoder/Runboard/internal/domain/device"
	"github.com/NordCoder/Runboard/internal/domain/run"
	"github.com/NordCoder/Runboard/internal/services/dashboard"
	"github.com/NordCoder/Runboard/internal/view"
)

type runDTO struct {
	view.RunRow
	StartedAt   time.Time `json:"started_at"`
	DurationSec int64     `json:"duration_sec"`
}

func toRunDTOs(list []run.Run) []runDTO {
	rows := view.RunRows(list)
	out := make([]runDTO, len(list))
	for i, r := range list {
		out[i] = runDTO{RunRow: rows[i], StartedAt: r.StartedAt, DurationSec: r.DurationSec}
	}
	return out
}

type runsResponse struct {
	Runs  []runDTO `json:"runs"`
	Total int      `json:"total"`
}

type stepsResponse struct {
	Run   runDTO     `json:"run"`
	Steps []run.Step `json:"steps"`
}

type devicesResponse struct {
	Devices []device.Device         `json:"devices"`
	Summary dashboard.DeviceSummary `json:"summary"`
}

type flakyResponse struct {
	Shares []dashboard.DeviceShare `json:"shares"`
	Donut  []view.DonutSegment     `json:"donut"`
}

type trendResponse struct {
	Series dashboard.TrendSeries `json:"series"`
	Chart  view.TrendChart       `json:"chart"`
}

type dashboardResponse struct {
	Cards         []view.Card             `json:"cards"`
	KPIs          dashboard.KPIs          `json:"kpis"`
	Runs          []runDTO                `json:"runs"`
	Devices       dashboard.DeviceSummary `json:"devices"`
	FlakyByDevice flakyResponse           `json:"flaky_by_device"`
	Trend         trendResponse           `json:"trend"`
	GeneratedAt   time.Time               `json:"generated_at"`
}

const (
	donutRadius    = 80
	donutThickness = 24
	chartWidth     = 560
	chartHeight    = 200
)

func toDashboard(ov *dashboard.Overview) dashboardResponse {
	return dashboardResponse{
		Cards:   view.KPICards(ov.KPIs, ov.Devices),
		KPIs:    ov.KPIs,
		Runs:    toRunDTOs(ov.Runs),
		Devices: ov.Devices,
		FlakyByDevice: flakyResponse{
			Shares: ov.FlakyByDevice,
			Donut:  view.Donut(ov.FlakyByDevice, donutRadius, donutThickness),
		},
		Trend: trendResponse{
			Series: ov.Trend,
			Chart:  view.Trend(ov.Trend, chartWidth, chartHeight),
		},
		GeneratedAt: ov.GeneratedAt,
	}
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}
