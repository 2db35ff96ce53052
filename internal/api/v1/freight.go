package v1

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FreightRecord is one priced freight movement. The analysis engine only reads these.
type FreightRecord struct {
	ID            string          `json:"id"`
	RecordDate    time.Time       `json:"record_date"`
	OriginID      string          `json:"origin_id"`
	DestinationID string          `json:"destination_id"`
	CarrierID     string          `json:"carrier_id"`
	FreightCharge decimal.Decimal `json:"freight_charge"`
	CurrencyCode  string          `json:"currency_code"`
	TransportMode string          `json:"transport_mode"`
}

// Validate ensures the record carries the fields aggregation depends on.
func (r *FreightRecord) Validate() error {
	if r.RecordDate.IsZero() {
		return fmt.Errorf("record_date is required")
	}
	if r.CurrencyCode == "" {
		return fmt.Errorf("currency_code is required")
	}
	if r.FreightCharge.IsNegative() {
		return fmt.Errorf("freight_charge must not be negative")
	}
	return nil
}
