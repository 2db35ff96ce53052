package calculation

import (
	"github.com/shopspring/decimal"
)

// MovingAverage computes a trailing simple moving average. Positions without a full
// window are invalid, so a series shorter than window yields only invalid entries.
func MovingAverage(values []decimal.Decimal, window int) ([]decimal.NullDecimal, error) {
	if values == nil {
		return nil, invalidInputf("values are required")
	}
	if window <= 0 {
		return nil, invalidInputf("window size must be positive, got %d", window)
	}

	out := make([]decimal.NullDecimal, len(values))
	if len(values) < window {
		return out, nil
	}

	size := decimal.NewFromInt(int64(window))
	sum := decimal.Zero
	for i, v := range values {
		sum = sum.Add(v)
		if i >= window {
			sum = sum.Sub(values[i-window])
		}
		if i >= window-1 {
			out[i] = decimal.NewNullDecimal(Quantize(sum.Div(size)))
		}
	}
	return out, nil
}
