package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/freightpulse/freightpulse/internal/analysis"
	v1 "github.com/freightpulse/freightpulse/internal/api/v1"
	corecfg "github.com/freightpulse/freightpulse/internal/core/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const fixtures = `
- id: r1
  record_date: "2026-03-01"
  origin_id: ORD
  destination_id: LAX
  carrier_id: c-1
  freight_charge: 1000
  currency_code: USD
  transport_mode: road
- id: r2
  record_date: "2026-03-05"
  origin_id: ORD
  destination_id: LAX
  carrier_id: c-1
  freight_charge: 1000
  currency_code: EUR
  transport_mode: road
`

const periodYAML = `
id: "march-week-one"
name: "First week of March"
start_date: "2026-03-01"
end_date: "2026-03-07"
granularity: "daily"
`

func memoryConfig(t *testing.T) *corecfg.Config {
	t.Helper()
	root := t.TempDir()
	catalogDir := filepath.Join(root, "periods")
	require.NoError(t, os.MkdirAll(catalogDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(catalogDir, "march.yaml"), []byte(periodYAML), 0o644))
	fixturesPath := filepath.Join(root, "records.yaml")
	require.NoError(t, os.WriteFile(fixturesPath, []byte(fixtures), 0o644))

	cfgPath := filepath.Join(root, "freightpulse.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
database:
  type: "memory"
  fixtures_path: "`+fixturesPath+`"
periods:
  catalog_dir: "`+catalogDir+`"
cache:
  backend: "memory"
  janitor_interval: "0s"
currency:
  base: "USD"
  rates:
    EUR: "1.1"
`), 0o644))

	cfg, err := corecfg.Load(cfgPath)
	require.NoError(t, err)
	return cfg
}

func TestBuild_MemoryBackend(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := Build(ctx, memoryConfig(t))
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Close()) }()
	require.Empty(t, a.Checks)
	require.Nil(t, a.Warmup)

	result, hit, err := a.Engine.Analyze(ctx, analysis.AnalyzeRequest{TimePeriodID: "march-week-one", UseCache: true})
	require.NoError(t, err)
	require.False(t, hit)
	require.Equal(t, v1.StatusCompleted, result.Status, result.ErrorMessage)
	require.Equal(t, "USD", result.CurrencyCode)
	require.True(t, decimal.RequireFromString("1100").Equal(result.EndValue.Decimal), result.EndValue.Decimal.String())
	require.True(t, decimal.RequireFromString("10").Equal(result.PercentageChange.Decimal))

	_, hit, err = a.Engine.Analyze(ctx, analysis.AnalyzeRequest{TimePeriodID: "march-week-one", UseCache: true})
	require.NoError(t, err)
	require.True(t, hit)
}

func TestBuild_NoCacheBackend(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.Cache.Backend = "none"

	a, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	_, hit, err := a.Engine.Analyze(context.Background(), analysis.AnalyzeRequest{TimePeriodID: "march-week-one", UseCache: true})
	require.NoError(t, err)
	require.False(t, hit)

	n, err := a.Engine.InvalidateCache(context.Background(), "")
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestBuild_WarmupFillsCache(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := memoryConfig(t)
	cfg.Warmup.Enabled = true
	cfg.Warmup.Interval = "1h"
	cfg.Warmup.Workers = 2

	a, err := Build(ctx, cfg)
	require.NoError(t, err)
	defer a.Close()
	require.NotNil(t, a.Warmup)

	stats := a.Warmup.RunOnce(ctx)
	require.Equal(t, 1, stats.Computed)

	_, hit, err := a.Engine.Analyze(ctx, analysis.AnalyzeRequest{TimePeriodID: "march-week-one", UseCache: true})
	require.NoError(t, err)
	require.True(t, hit)
}

func TestBuild_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *corecfg.Config)
		wantErr string
	}{
		{
			name:    "missing fixtures",
			mutate:  func(cfg *corecfg.Config) { cfg.Database.FixturesPath = "/nonexistent/records.yaml" },
			wantErr: "reading fixtures file",
		},
		{
			name:    "unknown database",
			mutate:  func(cfg *corecfg.Config) { cfg.Database.Type = "sqlite" },
			wantErr: "unsupported database.type",
		},
		{
			name:    "bad currency rate",
			mutate:  func(cfg *corecfg.Config) { cfg.Currency.Rates = map[string]string{"EUR": "abc"} },
			wantErr: "failed to build currency converter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := memoryConfig(t)
			tt.mutate(cfg)
			_, err := Build(context.Background(), cfg)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
