package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	v1 "github.com/freightpulse/freightpulse/internal/api/v1"
	"github.com/freightpulse/freightpulse/internal/core/calculation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func completedResult(format v1.OutputFormat) *v1.AnalysisResult {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	r := &v1.AnalysisResult{
		ID:           "a-1",
		TimePeriodID: "march",
		Status:       v1.StatusCompleted,
		OutputFormat: format,
	}
	r.ApplyResults(&v1.Results{
		StartValue:       decimal.NewFromInt(1000),
		EndValue:         decimal.NewFromInt(1100),
		AbsoluteChange:   decimal.NewFromInt(100),
		PercentageChange: decimal.NewFromInt(10),
		TrendDirection:   calculation.TrendIncreasing,
		CurrencyCode:     "USD",
		DataPoints:       2,
		TimeSeries: []v1.SeriesPoint{
			{
				StartDate: start,
				EndDate:   start.AddDate(0, 0, 1),
				Average:   decimal.NewNullDecimal(decimal.NewFromInt(1000)),
				Min:       decimal.NewNullDecimal(decimal.NewFromInt(1000)),
				Max:       decimal.NewNullDecimal(decimal.NewFromInt(1000)),
				StdDev:    decimal.NewNullDecimal(decimal.Zero),
				Count:     1,
			},
			{StartDate: start.AddDate(0, 0, 1), EndDate: start.AddDate(0, 0, 2)},
		},
	})
	return r
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		result   *v1.AnalysisResult
		contains []string
	}{
		{
			name:     "text summary",
			result:   completedResult(v1.FormatText),
			contains: []string{"Status             completed", "Percentage change  10%", "Trend              increasing"},
		},
		{
			name: "failed text shows the error",
			result: &v1.AnalysisResult{
				ID: "a-2", Status: v1.StatusFailed, ErrorMessage: "Time period not found", OutputFormat: v1.FormatText,
			},
			contains: []string{"Error     Time period not found"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, render(&buf, tc.result, false))
			for _, want := range tc.contains {
				require.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, completedResult(v1.FormatCSV), true))

	var out struct {
		Analysis v1.AnalysisResult `json:"analysis"`
		CacheHit bool              `json:"cache_hit"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.True(t, out.CacheHit)
	require.Equal(t, "a-1", out.Analysis.ID)
	require.True(t, out.Analysis.EndValue.Decimal.Equal(decimal.NewFromInt(1100)))
}
