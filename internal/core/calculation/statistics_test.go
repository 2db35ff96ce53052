package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func decimals(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.RequireFromString(v)
	}
	return out
}

func TestCalculateStatistics(t *testing.T) {
	stats, err := CalculateStatistics(decimals("2", "4", "4", "4", "5", "5", "7", "9"))
	require.NoError(t, err)

	require.Equal(t, 8, stats.Count)
	require.Equal(t, "5.0000", stats.Mean.StringFixed(Scale))
	require.Equal(t, "2.0000", stats.Min.StringFixed(Scale))
	require.Equal(t, "9.0000", stats.Max.StringFixed(Scale))
	require.Equal(t, "4.5000", stats.Median.StringFixed(Scale))
	require.Equal(t, "4.0000", stats.Variance.StringFixed(Scale))
	require.Equal(t, "2.0000", stats.StdDev.StringFixed(Scale))
}

func TestCalculateStatistics_OddCountAndIrrationalStdDev(t *testing.T) {
	stats, err := CalculateStatistics(decimals("1000", "1100", "1200", "1300", "1400"))
	require.NoError(t, err)

	require.Equal(t, "1200.0000", stats.Mean.StringFixed(Scale))
	require.Equal(t, "1200.0000", stats.Median.StringFixed(Scale))
	require.Equal(t, "20000.0000", stats.Variance.StringFixed(Scale))
	// sqrt(20000) = 141.42135623...
	require.Equal(t, "141.4214", stats.StdDev.StringFixed(Scale))
}

func TestCalculateStatistics_SingleValue(t *testing.T) {
	stats, err := CalculateStatistics(decimals("12.5"))
	require.NoError(t, err)
	require.True(t, stats.StdDev.IsZero())
	require.True(t, stats.Median.Equal(decimal.RequireFromString("12.5")))
}

func TestCalculateStatistics_Empty(t *testing.T) {
	_, err := CalculateStatistics(nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = StdDev([]decimal.Decimal{})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSqrt_SmallValues(t *testing.T) {
	require.Equal(t, "0.5000", Quantize(sqrt(decimal.RequireFromString("0.25"))).StringFixed(Scale))
	require.True(t, sqrt(decimal.Zero).IsZero())
}

func TestMovingAverage(t *testing.T) {
	got, err := MovingAverage(decimals("1", "2", "3", "4", "5"), 3)
	require.NoError(t, err)
	require.Len(t, got, 5)

	require.False(t, got[0].Valid)
	require.False(t, got[1].Valid)
	require.Equal(t, "2.0000", got[2].Decimal.StringFixed(Scale))
	require.Equal(t, "3.0000", got[3].Decimal.StringFixed(Scale))
	require.Equal(t, "4.0000", got[4].Decimal.StringFixed(Scale))
}

func TestMovingAverage_WindowLongerThanSeries(t *testing.T) {
	got, err := MovingAverage(decimals("1", "2", "3"), 5)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, v := range got {
		require.False(t, v.Valid)
	}
}

func TestMovingAverage_InvalidInput(t *testing.T) {
	_, err := MovingAverage(nil, 3)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = MovingAverage(decimals("1"), 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}
