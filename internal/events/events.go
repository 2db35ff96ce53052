package events

import (
	"context"
	"time"

	v1 "github.com/freightpulse/freightpulse/internal/api/v1"
	"github.com/freightpulse/freightpulse/internal/core/calculation"
	"github.com/shopspring/decimal"
)

// Type names the lifecycle outcome an event reports.
type Type string

const (
	TypeCompleted Type = "completed"
	TypeFailed    Type = "failed"
)

// AnalysisEvent announces that an analysis reached a terminal status.
type AnalysisEvent struct {
	Type             Type                       `json:"type"`
	AnalysisID       string                     `json:"analysis_id"`
	UserID           string                     `json:"user_id,omitempty"`
	TimePeriodID     string                     `json:"time_period_id"`
	Status           v1.AnalysisStatus          `json:"status"`
	PercentageChange decimal.NullDecimal        `json:"percentage_change"`
	TrendDirection   calculation.TrendDirection `json:"trend_direction,omitempty"`
	IsCached         bool                       `json:"is_cached"`
	ErrorMessage     string                     `json:"error_message,omitempty"`
	OccurredAt       time.Time                  `json:"occurred_at"`
}

// FromResult builds the event for a result in a terminal status.
func FromResult(r *v1.AnalysisResult, at time.Time) AnalysisEvent {
	t := TypeCompleted
	if r.Status == v1.StatusFailed {
		t = TypeFailed
	}
	return AnalysisEvent{
		Type:             t,
		AnalysisID:       r.ID,
		UserID:           r.UserID,
		TimePeriodID:     r.TimePeriodID,
		Status:           r.Status,
		PercentageChange: r.PercentageChange,
		TrendDirection:   r.TrendDirection,
		IsCached:         r.IsCached,
		ErrorMessage:     r.ErrorMessage,
		OccurredAt:       at,
	}
}

// Publisher delivers analysis events. Delivery is best effort.
type Publisher interface {
	Publish(ctx context.Context, evt AnalysisEvent) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, AnalysisEvent) error { return nil }
