package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TrendDirection classifies a percentage change.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// TrendThreshold is the percentage band, exclusive on both sides, inside which prices are stable.
var TrendThreshold = decimal.NewFromInt(1)

// ParseTrendDirection validates a stored trend label.
func ParseTrendDirection(s string) (TrendDirection, error) {
	switch d := TrendDirection(s); d {
	case TrendIncreasing, TrendDecreasing, TrendStable:
		return d, nil
	default:
		return "", fmt.Errorf("unknown trend direction %q", s)
	}
}

// DetermineTrendDirection maps a percentage change onto a TrendDirection.
// Exactly ±TrendThreshold is stable.
func DetermineTrendDirection(pct decimal.NullDecimal) (TrendDirection, error) {
	if !pct.Valid {
		return "", invalidInputf("percentage change is required")
	}

	switch {
	case pct.Decimal.GreaterThan(TrendThreshold):
		return TrendIncreasing, nil
	case pct.Decimal.LessThan(TrendThreshold.Neg()):
		return TrendDecreasing, nil
	default:
		return TrendStable, nil
	}
}
