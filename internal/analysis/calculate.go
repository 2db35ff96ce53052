package analysis

import (
	"context"
	"fmt"
	"strings"

	v1 "github.com/freightpulse/freightpulse/internal/api/v1"
	"github.com/freightpulse/freightpulse/internal/core/aggregation"
	"github.com/freightpulse/freightpulse/internal/core/calculation"
	"github.com/shopspring/decimal"
)

// calculatePriceMovement turns the records of one period into the results payload.
// records must be non-empty.
func (e *Engine) calculatePriceMovement(ctx context.Context, p *v1.TimePeriod, records []v1.FreightRecord, filters v1.Filters) (*v1.Results, error) {
	target := targetCurrency(filters, records, e.cfg.DefaultCurrency)

	money := make([]calculation.Money, len(records))
	for i, rec := range records {
		currency := rec.CurrencyCode
		if currency == "" {
			currency = target
		}
		money[i] = calculation.Money{Amount: rec.FreightCharge, Currency: currency}
	}
	charges, err := calculation.NormalizeValues(ctx, e.converter, money, target)
	if err != nil {
		return nil, fmt.Errorf("normalize freight charges: %w", err)
	}

	normalized := make([]v1.FreightRecord, len(records))
	for i, rec := range records {
		rec.FreightCharge = charges[i]
		rec.CurrencyCode = target
		normalized[i] = rec
	}

	series := aggregation.CalculateTimeSeries(normalized, p.Periods())
	points := make([]v1.SeriesPoint, 0, len(series))
	var averages []decimal.Decimal
	for _, agg := range series {
		points = append(points, agg.SeriesPoint())
		if agg.HasData() {
			averages = append(averages, agg.Average.Decimal)
		}
	}
	if len(averages) == 0 {
		return nil, analysisErrorf("No valid data points in the selected time period")
	}

	start := decimal.NewNullDecimal(averages[0])
	end := decimal.NewNullDecimal(averages[len(averages)-1])
	absolute, err := calculation.AbsoluteChange(start, end)
	if err != nil {
		return nil, err
	}
	pct, err := calculation.PercentageChange(start, end)
	if err != nil {
		return nil, err
	}
	trend, err := calculation.DetermineTrendDirection(decimal.NewNullDecimal(pct))
	if err != nil {
		return nil, err
	}

	stats, err := calculation.CalculateStatistics(charges)
	if err != nil {
		return nil, err
	}

	var movingAverage []decimal.NullDecimal
	if len(averages) >= e.cfg.MovingAverageWindow {
		movingAverage, err = calculation.MovingAverage(averages, e.cfg.MovingAverageWindow)
		if err != nil {
			return nil, err
		}
	}

	return &v1.Results{
		TimePeriod: v1.PeriodSummary{
			ID:          p.ID,
			Name:        p.Name,
			StartDate:   p.StartDate,
			EndDate:     p.EndDate,
			Granularity: p.Granularity,
		},
		StartValue:       start.Decimal,
		EndValue:         end.Decimal,
		AbsoluteChange:   absolute,
		PercentageChange: pct,
		TrendDirection:   trend,
		Statistics:       stats,
		TimeSeries:       points,
		MovingAverage:    movingAverage,
		Parameters:       filters,
		DataPoints:       len(records),
		CurrencyCode:     target,
		CalculatedAt:     e.nowFn(),
	}, nil
}

// targetCurrency picks the filter currency, then the first record's, then the fallback.
func targetCurrency(filters v1.Filters, records []v1.FreightRecord, fallback string) string {
	if filters.CurrencyCode != "" {
		return strings.ToUpper(filters.CurrencyCode)
	}
	for _, rec := range records {
		if rec.CurrencyCode != "" {
			return strings.ToUpper(rec.CurrencyCode)
		}
	}
	return strings.ToUpper(fallback)
}

// difference compares two price levels, base first.
func difference(base, comparison decimal.NullDecimal) (v1.Difference, error) {
	absolute, err := calculation.AbsoluteChange(base, comparison)
	if err != nil {
		return v1.Difference{}, err
	}
	pct, err := calculation.PercentageChange(base, comparison)
	if err != nil {
		return v1.Difference{}, err
	}
	trend, err := calculation.DetermineTrendDirection(decimal.NewNullDecimal(pct))
	if err != nil {
		return v1.Difference{}, err
	}
	return v1.Difference{Absolute: absolute, Percentage: pct, TrendDirection: trend}, nil
}
