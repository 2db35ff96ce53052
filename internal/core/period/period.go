package period

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"
)

// Granularity is the bucket width used to subdivide a time period.
type Granularity string

const (
	Daily     Granularity = "daily"
	Weekly    Granularity = "weekly"
	Monthly   Granularity = "monthly"
	Quarterly Granularity = "quarterly"
	Custom    Granularity = "custom"
)

const day = 24 * time.Hour

// ParseGranularity accepts the canonical names case-insensitively.
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(s)))
	switch g {
	case Daily, Weekly, Monthly, Quarterly, Custom:
		return g, nil
	default:
		return "", fmt.Errorf("unsupported granularity %q", s)
	}
}

// IntervalDays resolves a granularity to its bucket width in days.
// customDays is only consulted for Custom and must be positive there.
func IntervalDays(g Granularity, customDays int) (int, error) {
	switch g {
	case Daily:
		return 1, nil
	case Weekly:
		return 7, nil
	case Monthly:
		return 30, nil
	case Quarterly:
		return 90, nil
	case Custom:
		if customDays <= 0 {
			return 0, fmt.Errorf("custom granularity requires a positive interval, got %d", customDays)
		}
		return customDays, nil
	default:
		return 0, fmt.Errorf("unsupported granularity %q", g)
	}
}

// ParseInterval parses a custom bucket width such as "14d" or "336h" into whole days.
// Sub-day widths are rejected since periods are calendar-day aligned.
func ParseInterval(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("interval must not be empty")
	}

	if len(s) > 1 && s[len(s)-1] == 'd' {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, fmt.Errorf("invalid interval %q: %w", s, err)
		}
		if days <= 0 {
			return 0, fmt.Errorf("interval must be positive, got %q", s)
		}
		return days, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid interval %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("interval must be positive, got %q", s)
	}
	if d%day != 0 {
		return 0, fmt.Errorf("interval %q is not a whole number of days", s)
	}
	return int(d / day), nil
}

// Window is one bucket of a time period. Both bounds are inclusive calendar days.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the calendar date of t, read in t's own location, falls inside
// the window.
func (w Window) Contains(t time.Time) bool {
	d := TruncateToDay(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Windows walks [start, end] in steps of intervalDays. The sequence is restartable:
// every range over it begins again at start. The last window is clipped to end.
func Windows(start, end time.Time, intervalDays int) iter.Seq[Window] {
	start = TruncateToDay(start)
	end = TruncateToDay(end)

	return func(yield func(Window) bool) {
		if intervalDays <= 0 || end.Before(start) {
			return
		}
		for current := start; !current.After(end); {
			windowEnd := current.AddDate(0, 0, intervalDays-1)
			if windowEnd.After(end) {
				windowEnd = end
			}
			if !yield(Window{Start: current, End: windowEnd}) {
				return
			}
			current = windowEnd.AddDate(0, 0, 1)
		}
	}
}

// TruncateToDay returns the calendar date of t as midnight UTC, so dates recorded with
// different offsets compare by day.
func TruncateToDay(t time.Time) time.Time {
	year, month, d := t.Date()
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
