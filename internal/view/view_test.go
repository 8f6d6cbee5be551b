package view

import (
	"testing"
	"time"

	"github.com/NordCoder/Runboard/internal/domain/run"
	"github.com/NordCoder/Runboard/internal/services/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKPICards(t *testing.T) {
	cards := KPICards(
		dashboard.KPIs{Total: 3, PassRate: 1.0 / 3.0, FlakyRate: 0.125, AvgDurationSec: 125, RunsToday: 2},
		dashboard.DeviceSummary{Total: 5, Available: 3, Busy: 2},
	)
	byKey := map[string]Card{}
	for _, c := range cards {
		byKey[c.Key] = c
	}
	assert.Equal(t, "33%", byKey["pass_rate"].Value)
	assert.Equal(t, "13%", byKey["flaky_rate"].Value)
	assert.Equal(t, "2m 5s", byKey["avg_duration"].Value)
	assert.Equal(t, "2", byKey["runs_today"].Value)
	assert.Equal(t, "3/5", byKey["devices"].Value)
}

func TestRunRows(t *testing.T) {
	rows := RunRows([]run.Run{{
		ID: "r1", Scenario: "Login", Status: run.StatusFlaky, Device: "Pixel 8",
		StartedAt: time.Date(2026, 3, 10, 9, 5, 0, 0, time.UTC), DurationSec: 61,
	}})
	require.Len(t, rows, 1)
	assert.Equal(t, RunRow{
		ID: "r1", Scenario: "Login", Status: "FLAKY", Badge: "warning", Device: "Pixel 8",
		Started: "Mar 10 09:05", Duration: "1m 1s",
	}, rows[0])
	assert.Equal(t, "neutral", Badge("SKIPPED"))
}

func TestDonut(t *testing.T) {
	shares := []dashboard.DeviceShare{
		{Device: "A", Flaky: 1, Percent: 25},
		{Device: "B", Flaky: 0, Percent: 0},
		{Device: "C", Flaky: 3, Percent: 75},
	}
	segs := Donut(shares, 50, 10)
	require.Len(t, segs, 2)
	assert.Equal(t, "A", segs[0].Device)
	assert.InDelta(t, 0, segs[0].Start, 1e-9)
	assert.InDelta(t, 90, segs[0].End, 1e-9)
	assert.InDelta(t, 90, segs[1].Start, 1e-9)
	assert.InDelta(t, 360, segs[1].End, 1e-9)
	assert.Equal(t, "M 50 0 A 50 50 0 0 1 100 50 L 90 50 A 40 40 0 0 0 50 10 Z", segs[0].Path)
	assert.Contains(t, segs[1].Path, " 0 1 1 ")
}

func TestDonut_FullRingAndEmpty(t *testing.T) {
	segs := Donut([]dashboard.DeviceShare{{Device: "A", Flaky: 4, Percent: 100}}, 20, 0)
	require.Len(t, segs, 1)
	// Two half arcs, each a pie slice to the centre.
	assert.Equal(t, "M 20 0 A 20 20 0 0 1 20 40 L 20 20 Z M 20 40 A 20 20 0 0 1 20 0 L 20 20 Z", segs[0].Path)

	assert.Empty(t, Donut([]dashboard.DeviceShare{{Device: "A"}}, 20, 5))
	assert.Empty(t, Donut(nil, 20, 5))
}

func TestTrendChart(t *testing.T) {
	s := dashboard.TrendSeries{
		Labels: []string{"Mon", "Tue", "Wed"},
		Points: []dashboard.TrendPoint{{Pass: 2}, {Pass: 4, Fail: 1}, {Flaky: 2}},
	}
	c := Trend(s, 200, 100)
	assert.Equal(t, 4, c.Max)
	require.Len(t, c.Lines, 3)
	assert.Equal(t, "PASS", c.Lines[0].Status)
	assert.Equal(t, "0,50 100,0 200,100", c.Lines[0].Polyline)
	assert.Equal(t, "0,100 100,75 200,100", c.Lines[1].Polyline)
	for _, l := range c.Lines {
		assert.Len(t, l.Points, len(s.Labels))
	}
}

func TestTrendChart_Degenerate(t *testing.T) {
	c := Trend(dashboard.TrendSeries{Labels: []string{"Mon"}, Points: []dashboard.TrendPoint{{}}}, 100, 50)
	assert.Equal(t, 1, c.Max)
	assert.Equal(t, "50,50", c.Lines[0].Polyline)

	empty := Trend(dashboard.TrendSeries{}, 100, 50)
	for _, l := range empty.Lines {
		assert.Empty(t, l.Points)
		assert.Empty(t, l.Polyline)
	}
}
