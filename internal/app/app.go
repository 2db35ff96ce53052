package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/freightpulse/freightpulse/internal/analysis"
	"github.com/freightpulse/freightpulse/internal/cache"
	corecfg "github.com/freightpulse/freightpulse/internal/core/config"
	"github.com/freightpulse/freightpulse/internal/core/storage/filesystem"
	"github.com/freightpulse/freightpulse/internal/core/storage/memory"
	"github.com/freightpulse/freightpulse/internal/core/storage/postgres"
	"github.com/freightpulse/freightpulse/internal/currency"
	"github.com/freightpulse/freightpulse/internal/events"
	"github.com/freightpulse/freightpulse/internal/migrations"
	"github.com/freightpulse/freightpulse/internal/server"
	"github.com/freightpulse/freightpulse/internal/warmup"
	"github.com/rs/zerolog"
)

// App holds the wired analysis engine and the resources it owns.
type App struct {
	Engine *analysis.Engine
	// Checks are the components /health probes.
	Checks map[string]server.HealthChecker
	// Warmup is nil unless warmup is enabled. The caller decides whether to Start it.
	Warmup *warmup.Scheduler

	closers []func() error
}

// Build wires stores, cache, converter and publisher from cfg. Background work such as the
// memory cache janitor stops when ctx is cancelled.
func Build(ctx context.Context, cfg *corecfg.Config) (*App, error) {
	logger := zerolog.Ctx(ctx)
	a := &App{Checks: map[string]server.HealthChecker{}}

	deps, err := a.buildStores(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	// Time period catalog
	catalog, err := filesystem.NewPeriodCatalog(cfg.Periods.CatalogDir)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load period catalog: %w", err)
	}
	seeded, err := catalog.Seed(ctx, deps.Periods)
	if err != nil {
		a.Close()
		return nil, err
	}
	logger.Info().Int("periods", seeded).Str("dir", cfg.Periods.CatalogDir).Msg("[App] Period catalog loaded")

	if deps.Cache, err = a.buildCache(ctx, cfg.Cache); err != nil {
		a.Close()
		return nil, err
	}

	converter, err := currency.NewStaticConverter(cfg.Currency.Base, cfg.Currency.Rates)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to build currency converter: %w", err)
	}
	deps.Converter = converter

	if cfg.Events.Enabled {
		pub, err := events.NewNATSPublisher(cfg.Events.NATSURL, cfg.Events.SubjectPrefix)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, pub.Close)
		deps.Publisher = pub
		logger.Info().Str("url", cfg.Events.NATSURL).Msg("[App] Publishing analysis events")
	}

	a.Engine = analysis.NewEngine(deps, analysis.Config{
		CacheTTL:            cfg.Cache.TTL(),
		CacheNamespace:      cfg.Cache.Namespace,
		CacheTimeout:        cfg.Cache.TimeoutDuration(),
		FetchTimeout:        cfg.Analysis.FetchTimeoutDuration(),
		MovingAverageWindow: cfg.Analysis.MovingAverageWindow,
		DefaultCurrency:     cfg.Analysis.DefaultCurrency,
	})

	if cfg.Warmup.Enabled {
		entries := catalog.Entries()
		targets := make([]warmup.Target, 0, len(entries))
		for _, e := range entries {
			targets = append(targets, warmup.Target{PeriodID: e.Period.ID})
		}
		a.Warmup = warmup.NewScheduler(cfg.Warmup.IntervalDuration(), cfg.Warmup.Workers, a.Engine, targets)
	}
	return a, nil
}

func (a *App) buildStores(ctx context.Context, cfg *corecfg.Config) (analysis.Dependencies, error) {
	logger := zerolog.Ctx(ctx)

	switch cfg.Database.Type {
	case "memory":
		store := memory.NewStore()
		if cfg.Database.FixturesPath != "" {
			records, err := filesystem.LoadFreightRecords(cfg.Database.FixturesPath)
			if err != nil {
				return analysis.Dependencies{}, err
			}
			store.AddFreightRecords(records...)
			logger.Info().Int("records", len(records)).Msg("[App] Loaded freight fixtures")
		}
		return analysis.Dependencies{Periods: store, Records: store, Results: store, Transactor: store}, nil

	case "postgres":
		db, err := postgres.Open(ctx, cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
		if err != nil {
			return analysis.Dependencies{}, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := migrations.RunMigrations(ctx, db, cfg.Database.AutoMigrate); err != nil {
			db.Close()
			return analysis.Dependencies{}, fmt.Errorf("failed to run database migrations: %w", err)
		}
		adapter, err := postgres.NewAdapterWithDB(ctx, db)
		if err != nil {
			db.Close()
			return analysis.Dependencies{}, err
		}
		a.closers = append(a.closers, adapter.Close)
		a.Checks["database"] = adapter

		return analysis.Dependencies{
			Periods:    adapter,
			Records:    adapter,
			Results:    postgres.NewResultAdapter(db),
			Transactor: postgres.NewTransactor(db),
		}, nil

	default:
		return analysis.Dependencies{}, fmt.Errorf("unsupported database.type %q", cfg.Database.Type)
	}
}

func (a *App) buildCache(ctx context.Context, cfg corecfg.CacheConfig) (cache.Store, error) {
	switch cfg.Backend {
	case "memory":
		store := cache.NewMemoryStore(cfg.Namespace, cfg.Capacity, cfg.Shards)
		go store.RunJanitor(ctx, cfg.JanitorEvery())
		return store, nil
	case "redis":
		store, err := cache.NewRedisStore(ctx, cache.RedisConfig{
			URL:       cfg.RedisURL,
			Namespace: cfg.Namespace,
			Compress:  cfg.Compress,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		a.Checks["cache"] = store
		return store, nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported cache.backend %q", cfg.Backend)
	}
}

// Close releases every resource Build opened, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
