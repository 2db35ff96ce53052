package period

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIntervalDays(t *testing.T) {
	tests := []struct {
		name       string
		g          Granularity
		customDays int
		want       int
		wantError  bool
	}{
		{name: "daily", g: Daily, want: 1},
		{name: "weekly", g: Weekly, want: 7},
		{name: "monthly", g: Monthly, want: 30},
		{name: "quarterly", g: Quarterly, want: 90},
		{name: "custom", g: Custom, customDays: 14, want: 14},
		{name: "custom requires interval", g: Custom, wantError: true},
		{name: "unknown", g: Granularity("hourly"), wantError: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := IntervalDays(tc.g, tc.customDays)
			if tc.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity(" Weekly ")
	require.NoError(t, err)
	require.Equal(t, Weekly, g)

	_, err = ParseGranularity("yearly")
	require.Error(t, err)
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      int
		wantError bool
	}{
		{name: "days suffix", input: "14d", want: 14},
		{name: "hours multiple of a day", input: "48h", want: 2},
		{name: "sub-day invalid", input: "36h", wantError: true},
		{name: "empty invalid", input: "", wantError: true},
		{name: "zero invalid", input: "0d", wantError: true},
		{name: "bad day format invalid", input: "xd", wantError: true},
		{name: "doubled suffix invalid", input: "14dd", wantError: true},
		{name: "trailing junk invalid", input: "14dx", wantError: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseInterval(tc.input)
			if tc.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestWindows_CoversRangeWithShortTail(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	windows := slices.Collect(Windows(start, end, 4))
	require.Len(t, windows, 3)

	require.Equal(t, start, windows[0].Start)
	require.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), windows[0].End)
	require.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), windows[1].Start)
	require.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), windows[2].Start)
	require.Equal(t, end, windows[2].End)

	for i := 1; i < len(windows); i++ {
		require.True(t, windows[i].Start.After(windows[i-1].End), "windows must not overlap")
	}
}

func TestWindows_Restartable(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seq := Windows(start, start.AddDate(0, 0, 20), 7)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	require.Equal(t, first, second)
	require.Len(t, first, 3)
}

func TestWindows_EmptyOnInvalidInput(t *testing.T) {
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	require.Empty(t, slices.Collect(Windows(start, start.AddDate(0, 0, -1), 1)))
	require.Empty(t, slices.Collect(Windows(start, start.AddDate(0, 0, 5), 0)))
}

func TestWindow_Contains(t *testing.T) {
	w := Window{
		Start: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
	}

	require.True(t, w.Contains(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
	require.True(t, w.Contains(time.Date(2026, 2, 3, 23, 59, 0, 0, time.UTC)))
	require.False(t, w.Contains(time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC)))
	require.False(t, w.Contains(time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC)))
}

func TestWindow_ContainsOffsetDates(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	w := Window{
		Start: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	// 20:00 EST on March 1st is already March 2nd in UTC.
	require.True(t, w.Contains(time.Date(2026, 3, 1, 20, 0, 0, 0, est)))
	require.False(t, w.Contains(time.Date(2026, 3, 2, 1, 0, 0, 0, est)))
	require.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), TruncateToDay(time.Date(2026, 3, 1, 20, 0, 0, 0, est)))
}
