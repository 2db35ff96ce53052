package aggregation

import (
	"iter"
	"time"

	v1 "github.com/freightpulse/freightpulse/internal/api/v1"
	"github.com/freightpulse/freightpulse/internal/core/calculation"
	"github.com/freightpulse/freightpulse/internal/core/period"
	"github.com/shopspring/decimal"
)

// PeriodAggregate summarizes the freight charges that fell into one bucket.
// A bucket with no records has Count 0 and every value invalid.
type PeriodAggregate struct {
	Count       int64
	Average     decimal.NullDecimal
	Minimum     decimal.NullDecimal
	Maximum     decimal.NullDecimal
	StdDev      decimal.NullDecimal
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// HasData reports whether the bucket matched any records.
func (a PeriodAggregate) HasData() bool {
	return a.Count > 0 && a.Average.Valid
}

// SeriesPoint converts the aggregate into its wire representation.
func (a PeriodAggregate) SeriesPoint() v1.SeriesPoint {
	return v1.SeriesPoint{
		StartDate: a.PeriodStart,
		EndDate:   a.PeriodEnd,
		Average:   a.Average,
		Min:       a.Minimum,
		Max:       a.Maximum,
		StdDev:    a.StdDev,
		Count:     a.Count,
	}
}

// AggregateFreightData aggregates the records dated inside [start, end], both days inclusive.
// No matching records is not an error: it yields an empty stub for the window.
func AggregateFreightData(records []v1.FreightRecord, start, end time.Time) PeriodAggregate {
	window := period.Window{Start: period.TruncateToDay(start), End: period.TruncateToDay(end)}
	out := PeriodAggregate{PeriodStart: window.Start, PeriodEnd: window.End}

	state := make(map[string]decimal.Decimal, len(Operators))
	charges := make([]decimal.Decimal, 0)
	for _, rec := range records {
		if !window.Contains(rec.RecordDate) {
			continue
		}
		for op, reducer := range Operators {
			if cur, seen := state[op]; seen {
				state[op] = reducer.Apply(cur, rec.FreightCharge)
			} else {
				state[op] = reducer.Initial(rec.FreightCharge)
			}
		}
		charges = append(charges, rec.FreightCharge)
	}

	if len(charges) == 0 {
		return out
	}

	out.Count = state[OpCount].IntPart()
	out.Average = decimal.NewNullDecimal(calculation.Quantize(state[OpSum].Div(state[OpCount])))
	out.Minimum = decimal.NewNullDecimal(calculation.Quantize(state[OpMin]))
	out.Maximum = decimal.NewNullDecimal(calculation.Quantize(state[OpMax]))
	if stdDev, err := calculation.StdDev(charges); err == nil {
		out.StdDev = decimal.NewNullDecimal(stdDev)
	}
	return out
}

// CalculateTimeSeries aggregates records once per window, preserving window order.
func CalculateTimeSeries(records []v1.FreightRecord, windows iter.Seq[period.Window]) []PeriodAggregate {
	var series []PeriodAggregate
	for w := range windows {
		series = append(series, AggregateFreightData(records, w.Start, w.End))
	}
	return series
}
