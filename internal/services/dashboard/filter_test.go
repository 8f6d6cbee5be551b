package dashboard

import (
	"testing"
	"time"

	"github.com/NordCoder/Runboard/internal/domain/run"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func at(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

func tp(t time.Time) *time.Time { return &t }

func fixtureRuns() []run.Run {
	return []run.Run{
		{ID: "r1", Status: run.StatusPass, Device: "Pixel 8", StartedAt: at(0), DurationSec: 60},
		{ID: "r2", Status: run.StatusFail, Device: "iPhone 13", StartedAt: at(1), DurationSec: 90},
		{ID: "r3", Status: run.StatusFlaky, Device: "Pixel 8", StartedAt: at(2), DurationSec: 30},
		{ID: "r4", Status: run.StatusRunning, Device: "Galaxy S23", StartedAt: at(3), DurationSec: 5},
		{ID: "r5", Status: run.StatusPass, Device: "iPhone 13", StartedAt: at(4), DurationSec: 120},
	}
}

func ids(runs []run.Run) []string {
	out := make([]string, 0, len(runs))
	for _, r := range runs {
		out = append(out, r.ID)
	}
	return out
}

func TestFilter_NoOptionsReturnsInput(t *testing.T) {
	in := fixtureRuns()
	got := Filter(in, FilterOptions{})
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("unfiltered result differs (-want +got):\n%s", diff)
	}
}

func TestFilter_EmptyInput(t *testing.T) {
	got := Filter(nil, FilterOptions{Status: "PASS"})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilter_Predicates(t *testing.T) {
	tests := []struct {
		name string
		opts FilterOptions
		want []string
	}{
		{"status upper", FilterOptions{Status: "PASS"}, []string{"r1", "r5"}},
		{"status lower", FilterOptions{Status: "flaky"}, []string{"r3"}},
		{"status all", FilterOptions{Status: "All"}, []string{"r1", "r2", "r3", "r4", "r5"}},
		{"unknown status is ignored", FilterOptions{Status: "skipped"}, []string{"r1", "r2", "r3", "r4", "r5"}},
		{"device exact", FilterOptions{Device: "Pixel 8"}, []string{"r1", "r3"}},
		{"device is case sensitive", FilterOptions{Device: "pixel 8"}, []string{}},
		{"device all", FilterOptions{Device: "all"}, []string{"r1", "r2", "r3", "r4", "r5"}},
		{"from inclusive", FilterOptions{DateFrom: tp(at(3))}, []string{"r4", "r5"}},
		{"to inclusive", FilterOptions{DateTo: tp(at(1))}, []string{"r1", "r2"}},
		{"single instant", FilterOptions{DateFrom: tp(at(2)), DateTo: tp(at(2))}, []string{"r3"}},
		{"anded", FilterOptions{Status: "pass", Device: "iPhone 13", DateFrom: tp(at(2))}, []string{"r5"}},
		{"inverted range", FilterOptions{DateFrom: tp(at(4)), DateTo: tp(at(0))}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(fixtureRuns(), tt.opts)))
		})
	}
}

// Every kept run satisfies all predicates and every matching run is kept.
func TestFilter_SoundAndComplete(t *testing.T) {
	runs := fixtureRuns()
	statuses := []string{"", "PASS", "FAIL", "FLAKY", "RUNNING"}
	devices := []string{"", "Pixel 8", "iPhone 13", "Galaxy S23"}
	bounds := []*time.Time{nil, tp(at(1)), tp(at(3))}

	for _, st := range statuses {
		for _, dev := range devices {
			for _, from := range bounds {
				for _, to := range bounds {
					if from != nil && to != nil && from.After(*to) {
						continue
					}
					opts := FilterOptions{Status: st, Device: dev, DateFrom: from, DateTo: to}
					var want []string
					for _, r := range runs {
						if matches(r, opts) {
							want = append(want, r.ID)
						}
					}
					got := ids(Filter(runs, opts))
					if want == nil {
						want = []string{}
					}
					require.Equal(t, want, got, "opts=%+v", opts)
				}
			}
		}
	}
}

func matches(r run.Run, o FilterOptions) bool {
	if o.Status != "" && string(r.Status) != o.Status {
		return false
	}
	if o.Device != "" && r.Device != o.Device {
		return false
	}
	if o.DateFrom != nil && r.StartedAt.Before(*o.DateFrom) {
		return false
	}
	if o.DateTo != nil && r.StartedAt.After(*o.DateTo) {
		return false
	}
	return true
}

func TestParseFilterOptions(t *testing.T) {
	loc := time.UTC

	opts, err := ParseFilterOptions(" flaky ", "Pixel 8", "2026-03-01", "2026-03-02", loc)
	require.NoError(t, err)
	assert.Equal(t, "flaky", opts.Status)
	assert.Equal(t, "Pixel 8", opts.Device)
	require.NotNil(t, opts.DateFrom)
	require.NotNil(t, opts.DateTo)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, loc), *opts.DateFrom)
	assert.Equal(t, time.Date(2026, 3, 2, 23, 59, 59, 999999999, loc), *opts.DateTo)

	opts, err = ParseFilterOptions("", "", "2026-03-01T10:00:00Z", "", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), opts.DateFrom.UTC())
	assert.Nil(t, opts.DateTo)

	_, err = ParseFilterOptions("", "", "yesterday", "", loc)
	require.ErrorIs(t, err, ErrInvalidFilter)

	_, err = ParseFilterOptions("", "", "", "03/02/2026", loc)
	require.ErrorIs(t, err, ErrInvalidFilter)
}
