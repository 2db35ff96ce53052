package analysis

import (
	"time"

	v1 "github.com/freightpulse/freightpulse/internal/api/v1"
	"github.com/freightpulse/freightpulse/internal/cache"
	"github.com/freightpulse/freightpulse/internal/core/calculation"
	"github.com/freightpulse/freightpulse/internal/core/storage"
	"github.com/freightpulse/freightpulse/internal/events"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// AnalyzeRequest asks for one price-movement analysis.
type AnalyzeRequest struct {
	TimePeriodID string
	Filters      v1.Filters
	UserID       string
	OutputFormat v1.OutputFormat
	UseCache     bool
}

// CompareRequest asks for two analyses over the same filters and their difference.
type CompareRequest struct {
	BasePeriodID       string
	ComparisonPeriodID string
	Filters            v1.Filters
	UserID             string
}

// Config tunes the engine.
type Config struct {
	CacheTTL            time.Duration
	CacheNamespace      string
	CacheTimeout        time.Duration
	FetchTimeout        time.Duration
	MovingAverageWindow int
	// DefaultCurrency applies when neither the filters nor the data name one.
	DefaultCurrency string
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		CacheTTL:            60 * time.Minute,
		CacheNamespace:      cache.DefaultNamespace,
		CacheTimeout:        2 * time.Second,
		FetchTimeout:        30 * time.Second,
		MovingAverageWindow: 3,
	}
}

// Dependencies are the engine's collaborators. Cache, Converter and Publisher are optional.
type Dependencies struct {
	Periods    storage.TimePeriodStore
	Records    storage.FreightRecordStore
	Results    storage.ResultStore
	Transactor storage.Transactor
	Cache      cache.Store
	Converter  calculation.Converter
	Publisher  events.Publisher
}
