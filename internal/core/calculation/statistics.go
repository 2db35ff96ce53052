package calculation

import (
	"slices"

	"github.com/shopspring/decimal"
)

// sqrtPrecision is the number of places Newton iteration converges to before quantizing.
const sqrtPrecision = 16

var two = decimal.NewFromInt(2)

// Statistics are descriptive statistics over a price series. StdDev and Variance are population measures.
type Statistics struct {
	Count    int             `json:"count"`
	Mean     decimal.Decimal `json:"mean"`
	Min      decimal.Decimal `json:"min"`
	Max      decimal.Decimal `json:"max"`
	Median   decimal.Decimal `json:"median"`
	StdDev   decimal.Decimal `json:"std_dev"`
	Variance decimal.Decimal `json:"variance"`
}

// CalculateStatistics summarizes a non-empty series.
func CalculateStatistics(values []decimal.Decimal) (Statistics, error) {
	if len(values) == 0 {
		return Statistics{}, invalidInputf("statistics require at least one value")
	}

	n := decimal.NewFromInt(int64(len(values)))
	mean := decimal.Sum(values[0], values[1:]...).Div(n)
	variance := populationVariance(values, mean)

	return Statistics{
		Count:    len(values),
		Mean:     Quantize(mean),
		Min:      Quantize(decimal.Min(values[0], values[1:]...)),
		Max:      Quantize(decimal.Max(values[0], values[1:]...)),
		Median:   Quantize(median(values)),
		StdDev:   Quantize(sqrt(variance)),
		Variance: Quantize(variance),
	}, nil
}

// StdDev returns the population standard deviation of a non-empty series.
func StdDev(values []decimal.Decimal) (decimal.Decimal, error) {
	if len(values) == 0 {
		return decimal.Decimal{}, invalidInputf("standard deviation requires at least one value")
	}
	n := decimal.NewFromInt(int64(len(values)))
	mean := decimal.Sum(values[0], values[1:]...).Div(n)
	return Quantize(sqrt(populationVariance(values, mean))), nil
}

func populationVariance(values []decimal.Decimal, mean decimal.Decimal) decimal.Decimal {
	sumSquares := decimal.Zero
	for _, v := range values {
		diff := v.Sub(mean)
		sumSquares = sumSquares.Add(diff.Mul(diff))
	}
	return sumSquares.Div(decimal.NewFromInt(int64(len(values))))
}

func median(values []decimal.Decimal) decimal.Decimal {
	sorted := slices.Clone(values)
	slices.SortFunc(sorted, func(a, b decimal.Decimal) int { return a.Cmp(b) })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(two)
}

// sqrt computes a square root with Newton's method so std-dev never passes through float64.
func sqrt(d decimal.Decimal) decimal.Decimal {
	if d.Sign() <= 0 {
		return decimal.Zero
	}

	tolerance := decimal.New(1, -sqrtPrecision)
	x := d
	if d.LessThan(decimal.NewFromInt(1)) {
		x = decimal.NewFromInt(1)
	}
	for i := 0; i < 200; i++ {
		next := x.Add(d.DivRound(x, sqrtPrecision)).Div(two).Round(sqrtPrecision)
		if next.Sub(x).Abs().LessThanOrEqual(tolerance) {
			return next
		}
		x = next
	}
	return x
}
