package filesystem

import (
	"cmp"
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	v1 "github.com/freightpulse/freightpulse/internal/api/v1"
	"github.com/freightpulse/freightpulse/internal/core/period"
	"github.com/freightpulse/freightpulse/internal/core/storage"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// CatalogEntry is a loaded time period plus the fingerprint of the file it came from.
type CatalogEntry struct {
	Period      v1.TimePeriod
	File        string
	Fingerprint string // SHA-256 of the raw YAML file; computed at load time
}

// rawPeriod is the on-disk YAML shape.
// interval ("14d") is shorthand for granularity custom with custom_interval_days.
type rawPeriod struct {
	ID                 string `yaml:"id"`
	Name               string `yaml:"name"`
	StartDate          string `yaml:"start_date"`
	EndDate            string `yaml:"end_date"`
	Granularity        string `yaml:"granularity"`
	CustomIntervalDays int    `yaml:"custom_interval_days"`
	Interval           string `yaml:"interval"`
}

// PeriodCatalog loads time periods from *.yaml files in a directory.
// Each file contains exactly one period at the top level. Periods are loaded once at
// startup; the catalog is read-only and satisfies the read half of storage.TimePeriodStore.
type PeriodCatalog struct {
	dir     string
	entries map[string]CatalogEntry
}

// NewPeriodCatalog eagerly loads every period in dir. A missing directory is an empty catalog.
// Returns an error if any file is malformed or any period is invalid.
func NewPeriodCatalog(dir string) (*PeriodCatalog, error) {
	c := &PeriodCatalog{
		dir:     dir,
		entries: make(map[string]CatalogEntry),
	}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *PeriodCatalog) load() error {
	if c.dir == "" {
		return nil
	}
	info, err := os.Stat(c.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("period catalog dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("period catalog path %q is not a directory", c.dir)
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("reading period catalog dir: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || (!strings.HasSuffix(e.Name(), ".yaml") && !strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}

		path := filepath.Join(c.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading period file %s: %w", path, err)
		}

		var raw rawPeriod
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing period file %s: %w", path, err)
		}
		if raw.ID == "" {
			continue // skip empty / comment-only files
		}

		p, err := raw.toTimePeriod()
		if err != nil {
			return fmt.Errorf("period %q (%s): %w", raw.ID, e.Name(), err)
		}

		if _, exists := c.entries[p.ID]; exists {
			return fmt.Errorf("period %q: duplicate period id (check multiple YAML files)", p.ID)
		}

		c.entries[p.ID] = CatalogEntry{
			Period:      p,
			File:        path,
			Fingerprint: fmt.Sprintf("%x", sha256.Sum256(data)),
		}
	}
	return nil
}

func (r rawPeriod) toTimePeriod() (v1.TimePeriod, error) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return v1.TimePeriod{}, fmt.Errorf("invalid start_date %q: %w", r.StartDate, err)
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return v1.TimePeriod{}, fmt.Errorf("invalid end_date %q: %w", r.EndDate, err)
	}

	p := v1.TimePeriod{
		ID:                 r.ID,
		Name:               cmp.Or(r.Name, r.ID),
		StartDate:          start,
		EndDate:            end,
		CustomIntervalDays: r.CustomIntervalDays,
	}

	switch {
	case r.Interval != "" && r.Granularity != "" && r.Granularity != string(period.Custom):
		return v1.TimePeriod{}, fmt.Errorf("interval cannot be combined with granularity %q", r.Granularity)
	case r.Interval != "":
		days, err := period.ParseInterval(r.Interval)
		if err != nil {
			return v1.TimePeriod{}, err
		}
		p.Granularity = period.Custom
		p.CustomIntervalDays = days
	default:
		g, err := period.ParseGranularity(r.Granularity)
		if err != nil {
			return v1.TimePeriod{}, err
		}
		p.Granularity = g
	}

	if err := p.Validate(); err != nil {
		return v1.TimePeriod{}, err
	}
	return p, nil
}

// GetTimePeriod returns storage.ErrNotFound for an id the catalog does not hold.
func (c *PeriodCatalog) GetTimePeriod(_ context.Context, id string) (*v1.TimePeriod, error) {
	entry, ok := c.entries[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	p := entry.Period
	return &p, nil
}

// Entries returns every loaded period ordered by id.
func (c *PeriodCatalog) Entries() []CatalogEntry {
	out := make([]CatalogEntry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b CatalogEntry) int { return cmp.Compare(a.Period.ID, b.Period.ID) })
	return out
}

// Seed saves every catalog period into dst and returns how many it offered.
// Stores keep the first version of a period, so re-seeding never rewrites history.
func (c *PeriodCatalog) Seed(ctx context.Context, dst storage.TimePeriodStore) (int, error) {
	entries := c.Entries()
	for _, e := range entries {
		p := e.Period
		if err := dst.SaveTimePeriod(ctx, &p); err != nil {
			return 0, fmt.Errorf("seeding period %q: %w", p.ID, err)
		}
	}
	return len(entries), nil
}
