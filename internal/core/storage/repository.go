package storage

import (
	"context"
	"errors"
	"time"

	v1 "github.com/freightpulse/freightpulse/internal/api/v1"
)

// ErrNotFound is returned when a time period or analysis result does not exist.
var ErrNotFound = errors.New("not found")

// RecordQuery scopes a freight record fetch. Empty filter lists match everything.
// StartDate and EndDate are inclusive calendar days.
type RecordQuery struct {
	StartDate      time.Time
	EndDate        time.Time
	OriginIDs      []string
	DestinationIDs []string
	CarrierIDs     []string
	TransportModes []string
}

// QueryFromFilters builds a record query for one time period window.
func QueryFromFilters(start, end time.Time, f v1.Filters) RecordQuery {
	return RecordQuery{
		StartDate:      start,
		EndDate:        end,
		OriginIDs:      f.OriginIDs,
		DestinationIDs: f.DestinationIDs,
		CarrierIDs:     f.CarrierIDs,
		TransportModes: f.TransportModes,
	}
}

// FreightRecordStore reads raw freight records. Records come back ordered by record_date ASC.
type FreightRecordStore interface {
	GetFreightRecords(ctx context.Context, q RecordQuery) ([]v1.FreightRecord, error)
}

// TimePeriodStore reads analysis time periods. Save exists for seeding only.
type TimePeriodStore interface {
	GetTimePeriod(ctx context.Context, id string) (*v1.TimePeriod, error)
	SaveTimePeriod(ctx context.Context, p *v1.TimePeriod) error
}

// ListOptions paginates result listings.
type ListOptions struct {
	UserID string
	Limit  int
	Offset int
}

// ResultStore persists analysis results.
type ResultStore interface {
	CreateResult(ctx context.Context, r *v1.AnalysisResult) error
	// GetResult returns ErrNotFound when no row matches.
	GetResult(ctx context.Context, id string) (*v1.AnalysisResult, error)
	// UpdateResult returns ErrNotFound when no row matches.
	UpdateResult(ctx context.Context, r *v1.AnalysisResult) error
	// DeleteResult returns ErrNotFound when no row matches.
	DeleteResult(ctx context.Context, id string) error
	// ListResults returns newest results first.
	ListResults(ctx context.Context, opts ListOptions) ([]*v1.AnalysisResult, error)
}

// Stores groups the stores available inside a unit of work.
type Stores struct {
	Results ResultStore
}

// Transactor runs fn inside one unit of work. fn's stores share the transaction;
// returning an error rolls everything back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, s Stores) error) error
}
