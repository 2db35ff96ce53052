package v1

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/freightpulse/freightpulse/internal/core/calculation"
	"github.com/freightpulse/freightpulse/internal/core/period"
	"github.com/shopspring/decimal"
)

// AnalysisStatus is the lifecycle state of an AnalysisResult.
type AnalysisStatus string

const (
	StatusPending    AnalysisStatus = "pending"
	StatusProcessing AnalysisStatus = "processing"
	StatusCompleted  AnalysisStatus = "completed"
	StatusFailed     AnalysisStatus = "failed"
)

// ParseAnalysisStatus validates a stored status label.
func ParseAnalysisStatus(s string) (AnalysisStatus, error) {
	switch st := AnalysisStatus(s); st {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return st, nil
	default:
		return "", fmt.Errorf("unknown analysis status %q", s)
	}
}

// Terminal reports whether no further transitions are allowed.
func (s AnalysisStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransition reports whether moving from s to next is a legal lifecycle step.
// pending may jump straight to completed when a cached result is reused.
func (s AnalysisStatus) CanTransition(next AnalysisStatus) (bool, error) {
	switch s {
	case StatusPending:
		return next == StatusProcessing || next == StatusCompleted || next == StatusFailed, nil
	case StatusProcessing:
		return next == StatusCompleted || next == StatusFailed, nil
	case StatusCompleted, StatusFailed:
		return false, nil
	default:
		return false, fmt.Errorf("unknown analysis status %q", s)
	}
}

// OutputFormat is the rendering the caller asked for. Rendering itself happens outside the engine.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatCSV  OutputFormat = "csv"
	FormatText OutputFormat = "text"
)

// ParseOutputFormat defaults to JSON for an empty value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatCSV, FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", s)
	}
}

// Filters narrow the freight records an analysis runs over.
type Filters struct {
	OriginIDs      []string `json:"origin_ids,omitempty"`
	DestinationIDs []string `json:"destination_ids,omitempty"`
	CarrierIDs     []string `json:"carrier_ids,omitempty"`
	TransportModes []string `json:"transport_modes,omitempty"`
	CurrencyCode   string   `json:"currency_code,omitempty"`
}

// Normalized returns a copy with sorted, de-duplicated lists and an upper-case currency,
// so equivalent filters compare and hash identically.
func (f Filters) Normalized() Filters {
	return Filters{
		OriginIDs:      normalizeList(f.OriginIDs),
		DestinationIDs: normalizeList(f.DestinationIDs),
		CarrierIDs:     normalizeList(f.CarrierIDs),
		TransportModes: normalizeList(f.TransportModes),
		CurrencyCode:   strings.ToUpper(strings.TrimSpace(f.CurrencyCode)),
	}
}

func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// SeriesPoint is one bucket of the price time series.
type SeriesPoint struct {
	StartDate time.Time           `json:"start_date"`
	EndDate   time.Time           `json:"end_date"`
	Average   decimal.NullDecimal `json:"average"`
	Min       decimal.NullDecimal `json:"min"`
	Max       decimal.NullDecimal `json:"max"`
	StdDev    decimal.NullDecimal `json:"std_dev"`
	Count     int64               `json:"count"`
}

// PeriodSummary identifies the period a result was computed over.
type PeriodSummary struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	StartDate   time.Time          `json:"start_date"`
	EndDate     time.Time          `json:"end_date"`
	Granularity period.Granularity `json:"granularity"`
}

// Results is the full computed payload of a completed analysis. It is also the cached value.
type Results struct {
	TimePeriod       PeriodSummary              `json:"time_period"`
	StartValue       decimal.Decimal            `json:"start_value"`
	EndValue         decimal.Decimal            `json:"end_value"`
	AbsoluteChange   decimal.Decimal            `json:"absolute_change"`
	PercentageChange decimal.Decimal            `json:"percentage_change"`
	TrendDirection   calculation.TrendDirection `json:"trend_direction"`
	Statistics       calculation.Statistics     `json:"statistics"`
	TimeSeries       []SeriesPoint              `json:"time_series"`
	MovingAverage    []decimal.NullDecimal      `json:"moving_average,omitempty"`
	Parameters       Filters                    `json:"parameters"`
	DataPoints       int                        `json:"data_points"`
	CurrencyCode     string                     `json:"currency_code"`
	CalculatedAt     time.Time                  `json:"calculated_at"`
}

// AnalysisResult is the stateful record of one analysis request.
type AnalysisResult struct {
	ID               string                     `json:"id"`
	UserID           string                     `json:"user_id,omitempty"`
	TimePeriodID     string                     `json:"time_period_id"`
	Parameters       Filters                    `json:"parameters"`
	Status           AnalysisStatus             `json:"status"`
	StartValue       decimal.NullDecimal        `json:"start_value"`
	EndValue         decimal.NullDecimal        `json:"end_value"`
	AbsoluteChange   decimal.NullDecimal        `json:"absolute_change"`
	PercentageChange decimal.NullDecimal        `json:"percentage_change"`
	TrendDirection   calculation.TrendDirection `json:"trend_direction,omitempty"`
	CurrencyCode     string                     `json:"currency_code,omitempty"`
	OutputFormat     OutputFormat               `json:"output_format"`
	Results          *Results                   `json:"results,omitempty"`
	ErrorMessage     string                     `json:"error_message,omitempty"`
	CalculatedAt     *time.Time                 `json:"calculated_at,omitempty"`
	IsCached         bool                       `json:"is_cached"`
	CacheExpiresAt   *time.Time                 `json:"cache_expires_at,omitempty"`
	CreatedAt        time.Time                  `json:"created_at"`
	UpdatedAt        time.Time                  `json:"updated_at"`
}

// ApplyResults copies the headline figures of r onto the result and marks it completed.
func (a *AnalysisResult) ApplyResults(r *Results) {
	a.Results = r
	a.StartValue = decimal.NewNullDecimal(r.StartValue)
	a.EndValue = decimal.NewNullDecimal(r.EndValue)
	a.AbsoluteChange = decimal.NewNullDecimal(r.AbsoluteChange)
	a.PercentageChange = decimal.NewNullDecimal(r.PercentageChange)
	a.TrendDirection = r.TrendDirection
	a.CurrencyCode = r.CurrencyCode
	calculatedAt := r.CalculatedAt
	a.CalculatedAt = &calculatedAt
	a.ErrorMessage = ""
}

// ClearResults drops every computed figure, leaving the identity and request fields intact.
func (a *AnalysisResult) ClearResults() {
	a.Results = nil
	a.StartValue = decimal.NullDecimal{}
	a.EndValue = decimal.NullDecimal{}
	a.AbsoluteChange = decimal.NullDecimal{}
	a.PercentageChange = decimal.NullDecimal{}
	a.TrendDirection = ""
	a.CurrencyCode = ""
	a.CalculatedAt = nil
	a.IsCached = false
	a.CacheExpiresAt = nil
}

// Difference compares two price levels.
type Difference struct {
	Absolute       decimal.Decimal            `json:"absolute"`
	Percentage     decimal.Decimal            `json:"percentage"`
	TrendDirection calculation.TrendDirection `json:"trend_direction"`
}

// Comparison holds two analyses and the difference between their end values.
type Comparison struct {
	Base       *AnalysisResult `json:"base"`
	Comparison *AnalysisResult `json:"comparison"`
	Difference Difference      `json:"difference"`
}
