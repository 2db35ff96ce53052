package v1

import (
	"fmt"
	"iter"
	"time"

	"github.com/freightpulse/freightpulse/internal/core/period"
)

// TimePeriod is a named date range plus the granularity it is bucketed by.
// Results reference periods by ID, so a period is never edited after use.
type TimePeriod struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	StartDate          time.Time          `json:"start_date"`
	EndDate            time.Time          `json:"end_date"`
	Granularity        period.Granularity `json:"granularity"`
	CustomIntervalDays int                `json:"custom_interval_days,omitempty"`
}

// Validate checks the bounds and the granularity settings.
func (p *TimePeriod) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("id is required")
	}
	if !p.StartDate.Before(p.EndDate) {
		return fmt.Errorf("start_date must be before end_date")
	}
	if p.Granularity != period.Custom && p.CustomIntervalDays != 0 {
		return fmt.Errorf("custom_interval_days is only allowed with custom granularity")
	}
	if _, err := p.IntervalDays(); err != nil {
		return err
	}
	return nil
}

// IntervalDays resolves the granularity to a bucket width in days.
func (p *TimePeriod) IntervalDays() (int, error) {
	return period.IntervalDays(p.Granularity, p.CustomIntervalDays)
}

// Periods yields the buckets covering [StartDate, EndDate]. An invalid granularity yields nothing.
func (p *TimePeriod) Periods() iter.Seq[period.Window] {
	days, err := p.IntervalDays()
	if err != nil {
		return func(func(period.Window) bool) {}
	}
	return period.Windows(p.StartDate, p.EndDate, days)
}
