package dashboard

import (
	"math"
	"time"

	"github.com/NordCoder/Runboard/internal/domain/device"
	"github.com/NordCoder/Runboard/internal/domain/run"
)

// KPIs are the headline numbers of the dashboard. Rates are fractions in [0,1].
type KPIs struct {
	Total          int     `json:"total"`
	PassRate       float64 `json:"pass_rate"`
	FlakyRate      float64 `json:"flaky_rate"`
	AvgDurationSec int64   `json:"avg_duration_sec"`
	RunsToday      int     `json:"runs_today"`
}

// Summarize computes KPIs over runs. An empty input yields all zeros.
// RunsToday counts runs started on now's calendar day in now's location.
func Summarize(runs []run.Run, now time.Time) KPIs {
	k := KPIs{Total: len(runs)}
	if len(runs) == 0 {
		return k
	}

	start := startOfDay(now)
	end := start.AddDate(0, 0, 1)

	var pass, flaky int
	var total int64
	for _, r := range runs {
		switch r.Status {
		case run.StatusPass:
			pass++
		case run.StatusFlaky:
			flaky++
		}
		total += r.DurationSec
		if !r.StartedAt.Before(start) && r.StartedAt.Before(end) {
			k.RunsToday++
		}
	}

	n := float64(len(runs))
	k.PassRate = float64(pass) / n
	k.FlakyRate = float64(flaky) / n
	k.AvgDurationSec = total / int64(len(runs))
	return k
}

type DeviceSummary struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Busy      int `json:"busy"`
	Reserved  int `json:"reserved"`
	Offline   int `json:"offline"`
}

func SummarizeDevices(devices []device.Device) DeviceSummary {
	s := DeviceSummary{Total: len(devices)}
	for _, d := range devices {
		switch d.Status {
		case device.StatusIdle:
			s.Available++
		case device.StatusBusy:
			s.Busy++
		case device.StatusReserved:
			s.Reserved++
		case device.StatusOffline:
			s.Offline++
		}
	}
	return s
}

// DeviceShare is one device's slice of all flaky runs.
type DeviceShare struct {
	Device  string `json:"device"`
	Flaky   int    `json:"flaky"`
	Percent int    `json:"percent"`
}

// FlakyByDevice returns one entry per registered device, in registry order.
// Percentages are rounded to whole numbers, so their sum may drift from 100
// by up to one per entry. Flaky runs on unregistered devices count toward
// the total but get no entry.
func FlakyByDevice(runs []run.Run, devices []device.Device) []DeviceShare {
	counts := make(map[string]int, len(devices))
	total := 0
	for _, r := range runs {
		if r.Status != run.StatusFlaky {
			continue
		}
		counts[r.Device]++
		total++
	}

	out := make([]DeviceShare, 0, len(devices))
	for _, d := range devices {
		share := DeviceShare{Device: d.Name, Flaky: counts[d.Name]}
		if total > 0 {
			share.Percent = int(math.Round(float64(share.Flaky) / float64(total) * 100))
		}
		out = append(out, share)
	}
	return out
}

type TrendPoint struct {
	Pass  int `json:"pass"`
	Fail  int `json:"fail"`
	Flaky int `json:"flaky"`
}

// TrendSeries holds daily counts, oldest first. Labels[i] names Points[i].
type TrendSeries struct {
	Labels []string     `json:"labels"`
	Points []TrendPoint `json:"points"`
}

const DefaultTrendDays = 7

// Trend buckets finished runs into the days days ending with now's day.
// Running runs and runs outside the window are skipped.
func Trend(runs []run.Run, days int, now time.Time) TrendSeries {
	if days <= 0 {
		days = DefaultTrendDays
	}
	first := startOfDay(now).AddDate(0, 0, -(days - 1))

	series := TrendSeries{
		Labels: make([]string, days),
		Points: make([]TrendPoint, days),
	}
	dayStarts := make([]time.Time, days+1)
	for i := 0; i <= days; i++ {
		dayStarts[i] = first.AddDate(0, 0, i)
	}
	for i := 0; i < days; i++ {
		series.Labels[i] = dayStarts[i].Weekday().String()[:3]
	}

	for _, r := range runs {
		if r.StartedAt.Before(dayStarts[0]) || !r.StartedAt.Before(dayStarts[days]) {
			continue
		}
		i := dayIndex(dayStarts, r.StartedAt)
		switch r.Status {
		case run.StatusPass:
			series.Points[i].Pass++
		case run.StatusFail:
			series.Points[i].Fail++
		case run.StatusFlaky:
			series.Points[i].Flaky++
		}
	}
	return series
}

// dayIndex finds the bucket of t. Buckets are calendar days, not 24h spans.
func dayIndex(starts []time.Time, t time.Time) int {
	for i := 0; i < len(starts)-1; i++ {
		if t.Before(starts[i+1]) {
			return i
		}
	}
	return len(starts) - 2
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
