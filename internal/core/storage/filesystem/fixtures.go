package filesystem

import (
	"fmt"
	"os"
	"strings"
	"time"

	v1 "github.com/freightpulse/freightpulse/internal/api/v1"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// rawRecord is one freight record in a fixtures file. freight_charge stays untyped so
// both `1250.5` and `"1250.50"` are accepted.
type rawRecord struct {
	ID            string      `yaml:"id"`
	RecordDate    string      `yaml:"record_date"`
	OriginID      string      `yaml:"origin_id"`
	DestinationID string      `yaml:"destination_id"`
	CarrierID     string      `yaml:"carrier_id"`
	FreightCharge interface{} `yaml:"freight_charge"`
	CurrencyCode  string      `yaml:"currency_code"`
	TransportMode string      `yaml:"transport_mode"`
}

// LoadFreightRecords reads a YAML list of freight records. It backs the memory
// database and local runs of the analyze command.
func LoadFreightRecords(path string) ([]v1.FreightRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures file %s: %w", path, err)
	}

	var raws []rawRecord
	if err := yaml.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("parsing fixtures file %s: %w", path, err)
	}

	records := make([]v1.FreightRecord, 0, len(raws))
	for i, raw := range raws {
		date, err := time.Parse(dateLayout, raw.RecordDate)
		if err != nil {
			return nil, fmt.Errorf("record %d: invalid record_date %q: %w", i, raw.RecordDate, err)
		}
		charge, err := ParseCharge(raw.FreightCharge)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		rec := v1.FreightRecord{
			ID:            raw.ID,
			RecordDate:    date,
			OriginID:      raw.OriginID,
			DestinationID: raw.DestinationID,
			CarrierID:     raw.CarrierID,
			FreightCharge: charge,
			CurrencyCode:  strings.ToUpper(raw.CurrencyCode),
			TransportMode: raw.TransportMode,
		}
		if rec.ID == "" {
			rec.ID = fmt.Sprintf("fixture-%d", i+1)
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("record %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParseCharge converts a decoded YAML or JSON scalar into a decimal.
// YAML numbers decode to int or float64; NewFromFloat converts the latter to
// the shortest exact decimal representation.
func ParseCharge(v interface{}) (decimal.Decimal, error) {
	switch val := v.(type) {
	case float64:
		return decimal.NewFromFloat(val), nil
	case float32:
		return decimal.NewFromFloat32(val), nil
	case int:
		return decimal.NewFromInt(int64(val)), nil
	case int64:
		return decimal.NewFromInt(val), nil
	case int32:
		return decimal.NewFromInt(int64(val)), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(val))
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid freight_charge %q: %w", val, err)
		}
		return d, nil
	case nil:
		return decimal.Zero, fmt.Errorf("freight_charge is required")
	default:
		return decimal.Zero, fmt.Errorf("unsupported freight_charge type %T", v)
	}
}
