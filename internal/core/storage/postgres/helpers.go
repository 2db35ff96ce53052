package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	v1 "github.com/freightpulse/freightpulse/internal/api/v1"
	"github.com/freightpulse/freightpulse/internal/core/calculation"
	"github.com/freightpulse/freightpulse/internal/core/period"
)

// marshalResultJSON marshals a result's parameters and results payload.
// A result without a payload produces nil (SQL NULL) rather than JSON "null".
func marshalResultJSON(r *v1.AnalysisResult) (paramsJSON, resultsJSON []byte, err error) {
	paramsJSON, err = json.Marshal(r.Parameters)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal parameters: %w", err)
	}

	if r.Results != nil {
		resultsJSON, err = json.Marshal(r.Results)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal results: %w", err)
		}
	}

	return paramsJSON, resultsJSON, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanResultRow scans an analysis_results row in resultColumns order.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanResultRow(row scanner) (*v1.AnalysisResult, error) {
	var (
		r                v1.AnalysisResult
		status, format   string
		trend            sql.NullString
		paramsJSON       []byte
		resultsJSON      []byte
		errorMessage     sql.NullString
		calculatedAt     sql.NullTime
		cacheExpiresAt   sql.NullTime
		userID, currency sql.NullString
	)

	err := row.Scan(
		&r.ID,
		&userID,
		&r.TimePeriodID,
		&paramsJSON,
		&status,
		&r.StartValue,
		&r.EndValue,
		&r.AbsoluteChange,
		&r.PercentageChange,
		&trend,
		&currency,
		&format,
		&resultsJSON,
		&errorMessage,
		&calculatedAt,
		&r.IsCached,
		&cacheExpiresAt,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan analysis result row: %w", err)
	}

	if r.Status, err = v1.ParseAnalysisStatus(status); err != nil {
		return nil, fmt.Errorf("analysis result %s: %w", r.ID, err)
	}
	if r.OutputFormat, err = v1.ParseOutputFormat(format); err != nil {
		return nil, fmt.Errorf("analysis result %s: %w", r.ID, err)
	}
	if trend.Valid {
		if r.TrendDirection, err = calculation.ParseTrendDirection(trend.String); err != nil {
			return nil, fmt.Errorf("analysis result %s: %w", r.ID, err)
		}
	}

	if len(paramsJSON) > 0 {
		if err := json.Unmarshal(paramsJSON, &r.Parameters); err != nil {
			return nil, fmt.Errorf("failed to unmarshal parameters: %w", err)
		}
	}
	if len(resultsJSON) > 0 {
		r.Results = &v1.Results{}
		if err := json.Unmarshal(resultsJSON, r.Results); err != nil {
			return nil, fmt.Errorf("failed to unmarshal results: %w", err)
		}
	}

	r.UserID = userID.String
	r.CurrencyCode = currency.String
	r.ErrorMessage = errorMessage.String
	r.CalculatedAt = timePtr(calculatedAt)
	r.CacheExpiresAt = timePtr(cacheExpiresAt)
	r.CreatedAt = r.CreatedAt.UTC()
	r.UpdatedAt = r.UpdatedAt.UTC()

	return &r, nil
}

// scanFreightRow scans a freight_records row in queryGetFreightRecords order.
func scanFreightRow(row scanner) (v1.FreightRecord, error) {
	var rec v1.FreightRecord
	var origin, destination, carrier, mode sql.NullString

	err := row.Scan(
		&rec.ID,
		&rec.RecordDate,
		&origin,
		&destination,
		&carrier,
		&rec.FreightCharge,
		&rec.CurrencyCode,
		&mode,
	)
	if err != nil {
		return v1.FreightRecord{}, fmt.Errorf("failed to scan freight record row: %w", err)
	}

	rec.OriginID = origin.String
	rec.DestinationID = destination.String
	rec.CarrierID = carrier.String
	rec.TransportMode = mode.String
	rec.RecordDate = period.TruncateToDay(rec.RecordDate)
	return rec, nil
}

func scanTimePeriodRow(row scanner) (*v1.TimePeriod, error) {
	var p v1.TimePeriod
	var granularity string
	var customDays sql.NullInt64

	if err := row.Scan(&p.ID, &p.Name, &p.StartDate, &p.EndDate, &granularity, &customDays); err != nil {
		return nil, err
	}

	g, err := period.ParseGranularity(granularity)
	if err != nil {
		return nil, fmt.Errorf("time period %s: %w", p.ID, err)
	}
	p.Granularity = g
	p.CustomIntervalDays = int(customDays.Int64)
	p.StartDate = period.TruncateToDay(p.StartDate)
	p.EndDate = period.TruncateToDay(p.EndDate)
	return &p, nil
}
