package calculation

import (
	"github.com/shopspring/decimal"
)

// Scale is the number of decimal places every result is quantized to.
const Scale = 4

var (
	// NewRateSentinel is reported when a price moves up from zero and the relative change is undefined.
	NewRateSentinel = decimal.RequireFromString("9999.9999")

	hundred = decimal.NewFromInt(100)
)

// Quantize rounds half away from zero to Scale places, which is round-half-up for magnitudes.
func Quantize(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}

// AbsoluteChange returns end - start.
func AbsoluteChange(start, end decimal.NullDecimal) (decimal.Decimal, error) {
	if !start.Valid || !end.Valid {
		return decimal.Decimal{}, invalidInputf("start and end values are required")
	}
	return Quantize(end.Decimal.Sub(start.Decimal)), nil
}

// PercentageChange returns (end - start) / start * 100.
//
// A zero start cannot be divided by, so it resolves to NewRateSentinel when the price rises,
// zero when it stays at zero, and the negated sentinel when it falls below zero.
func PercentageChange(start, end decimal.NullDecimal) (decimal.Decimal, error) {
	if !start.Valid || !end.Valid {
		return decimal.Decimal{}, invalidInputf("start and end values are required")
	}

	s, e := start.Decimal, end.Decimal
	if s.IsZero() {
		switch e.Sign() {
		case 1:
			return NewRateSentinel, nil
		case 0:
			return decimal.Zero, nil
		default:
			return NewRateSentinel.Neg(), nil
		}
	}
	if e.IsZero() && s.IsPositive() {
		return decimal.NewFromInt(-100), nil
	}

	return Quantize(e.Sub(s).Div(s).Mul(hundred)), nil
}
