package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	v1 "github.com/freightpulse/freightpulse/internal/api/v1"
	"github.com/shopspring/decimal"
)

// render prints a short summary for the text format and the raw result otherwise.
func render(w io.Writer, result *v1.AnalysisResult, cacheHit bool) error {
	if result.OutputFormat == v1.FormatText {
		return renderText(w, result, cacheHit)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Analysis *v1.AnalysisResult `json:"analysis"`
		CacheHit bool               `json:"cache_hit"`
	}{result, cacheHit})
}

func renderText(w io.Writer, result *v1.AnalysisResult, cacheHit bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Analysis\t%s\n", result.ID)
	fmt.Fprintf(tw, "Period\t%s\n", result.TimePeriodID)
	fmt.Fprintf(tw, "Status\t%s\n", result.Status)
	if result.Status == v1.StatusFailed {
		fmt.Fprintf(tw, "Error\t%s\n", result.ErrorMessage)
		return tw.Flush()
	}

	fmt.Fprintf(tw, "Cached\t%t\n", cacheHit)
	fmt.Fprintf(tw, "Currency\t%s\n", result.CurrencyCode)
	fmt.Fprintf(tw, "Start value\t%s\n", nullString(result.StartValue))
	fmt.Fprintf(tw, "End value\t%s\n", nullString(result.EndValue))
	fmt.Fprintf(tw, "Absolute change\t%s\n", nullString(result.AbsoluteChange))
	fmt.Fprintf(tw, "Percentage change\t%s%%\n", nullString(result.PercentageChange))
	fmt.Fprintf(tw, "Trend\t%s\n", result.TrendDirection)
	if r := result.Results; r != nil {
		fmt.Fprintf(tw, "Data points\t%d\n", r.DataPoints)
		fmt.Fprintf(tw, "Mean\t%s\n", r.Statistics.Mean)
		fmt.Fprintf(tw, "Median\t%s\n", r.Statistics.Median)
		fmt.Fprintf(tw, "Std dev\t%s\n", r.Statistics.StdDev)
		fmt.Fprintf(tw, "Min / max\t%s / %s\n", r.Statistics.Min, r.Statistics.Max)
	}
	return tw.Flush()
}

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
