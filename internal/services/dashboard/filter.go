package dashboard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NordCoder/Runboard/internal/domain/run"
)

// All disables the status or device predicate.
const All = "all"

var ErrInvalidFilter = errors.New("invalid filter")

// FilterOptions is a transient run query. Zero values disable a predicate.
type FilterOptions struct {
	Status   string
	Device   string
	DateFrom *time.Time
	DateTo   *time.Time
}

// Filter keeps the runs matching every set predicate, in input order.
// An unrecognised status disables the status predicate instead of hiding
// every run. Date bounds are inclusive; DateFrom after DateTo matches nothing.
func Filter(runs []run.Run, opts FilterOptions) []run.Run {
	out := make([]run.Run, 0, len(runs))
	if opts.DateFrom != nil && opts.DateTo != nil && opts.DateFrom.After(*opts.DateTo) {
		return out
	}

	status, byStatus := statusPredicate(opts.Status)
	byDevice := opts.Device != "" && !strings.EqualFold(opts.Device, All)

	for _, r := range runs {
		if byStatus && !strings.EqualFold(string(r.Status), string(status)) {
			continue
		}
		if byDevice && r.Device != opts.Device {
			continue
		}
		if opts.DateFrom != nil && r.StartedAt.Before(*opts.DateFrom) {
			continue
		}
		if opts.DateTo != nil && r.StartedAt.After(*opts.DateTo) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func statusPredicate(s string) (run.Status, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, All) {
		return "", false
	}
	st, err := run.ParseStatus(s)
	if err != nil {
		return "", false
	}
	return st, true
}

const dateLayout = "2006-01-02"

// ParseFilterOptions builds FilterOptions from query-string values. Bounds are
// RFC3339 timestamps or YYYY-MM-DD dates in loc; a date-only upper bound covers
// the whole day.
func ParseFilterOptions(status, device, from, to string, loc *time.Location) (FilterOptions, error) {
	if loc == nil {
		loc = time.Local
	}
	opts := FilterOptions{
		Status: strings.TrimSpace(status),
		Device: strings.TrimSpace(device),
	}
	var err error
	if opts.DateFrom, err = parseBound(from, loc, false); err != nil {
		return FilterOptions{}, fmt.Errorf("%w: from: %v", ErrInvalidFilter, err)
	}
	if opts.DateTo, err = parseBound(to, loc, true); err != nil {
		return FilterOptions{}, fmt.Errorf("%w: to: %v", ErrInvalidFilter, err)
	}
	return opts, nil
}

func parseBound(v string, loc *time.Location, endOfDay bool) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(dateLayout, v, loc)
	if err != nil {
		return nil, fmt.Errorf("want RFC3339 or %s, got %q", dateLayout, v)
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t, nil
}
