package filesystem

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseCharge(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    decimal.Decimal
		wantErr bool
	}{
		{name: "float64", value: 12.5, want: decimal.RequireFromString("12.5")},
		{name: "float32", value: float32(7.25), want: decimal.RequireFromString("7.25")},
		{name: "int", value: 7, want: decimal.NewFromInt(7)},
		{name: "int32", value: int32(8), want: decimal.NewFromInt(8)},
		{name: "int64", value: int64(9), want: decimal.NewFromInt(9)},
		{name: "decimal string", value: " 42.125 ", want: decimal.RequireFromString("42.125")},
		{name: "invalid string", value: "not-a-number", wantErr: true},
		{name: "missing", value: nil, wantErr: true},
		{name: "unsupported type", value: true, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCharge(tc.value)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.True(t, tc.want.Equal(got), "want=%s got=%s", tc.want.String(), got.String())
		})
	}
}

func TestLoadFreightRecords(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "records.yaml", `
- id: r1
  record_date: "2026-03-01"
  origin_id: ORD
  destination_id: LAX
  carrier_id: c-1
  freight_charge: 1000.25
  currency_code: usd
  transport_mode: road
- record_date: "2026-03-02"
  freight_charge: "1100.50"
  currency_code: EUR
`)

	records, err := LoadFreightRecords(filepath.Join(dir, "records.yaml"))
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "r1", records[0].ID)
	require.Equal(t, "USD", records[0].CurrencyCode)
	require.Equal(t, "1000.25", records[0].FreightCharge.String())
	require.Equal(t, "fixture-2", records[1].ID)
	require.Equal(t, "1100.5", records[1].FreightCharge.String())
}

func TestLoadFreightRecords_Invalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad-date.yaml", "- record_date: yesterday\n  freight_charge: 1\n  currency_code: USD\n")
	writeFile(t, dir, "negative.yaml", "- record_date: \"2026-03-01\"\n  freight_charge: -5\n  currency_code: USD\n")
	writeFile(t, dir, "no-currency.yaml", "- record_date: \"2026-03-01\"\n  freight_charge: 5\n")

	_, err := LoadFreightRecords(filepath.Join(dir, "bad-date.yaml"))
	require.ErrorContains(t, err, "invalid record_date")

	_, err = LoadFreightRecords(filepath.Join(dir, "negative.yaml"))
	require.ErrorContains(t, err, "must not be negative")

	_, err = LoadFreightRecords(filepath.Join(dir, "no-currency.yaml"))
	require.ErrorContains(t, err, "currency_code is required")

	_, err = LoadFreightRecords(filepath.Join(dir, "absent.yaml"))
	require.ErrorContains(t, err, "reading fixtures file")
}
