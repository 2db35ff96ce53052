package warmup

import (
	"context"
	"sync"
	"time"

	"github.com/freightpulse/freightpulse/internal/analysis"
	v1 "github.com/freightpulse/freightpulse/internal/api/v1"
	"github.com/freightpulse/freightpulse/internal/core/partition"
	"github.com/rs/zerolog"
)

const (
	defaultWorkerCount = 4

	// UserID owns the results warm runs persist.
	UserID = "system:warmup"
)

// Analyzer is the slice of the analysis engine the scheduler drives.
type Analyzer interface {
	Cached(ctx context.Context, periodID string, filters v1.Filters) bool
	Analyze(ctx context.Context, req analysis.AnalyzeRequest) (*v1.AnalysisResult, bool, error)
}

var _ Analyzer = (*analysis.Engine)(nil)

// Target is one period and filter set kept warm in the result cache.
type Target struct {
	PeriodID string
	Filters  v1.Filters
}

// Stats summarizes one pass.
type Stats struct {
	Skipped  int // already cached
	Computed int
	Failed   int
}

// Scheduler periodically precomputes analyses whose cache entries are missing or expired.
// It is stateless: each tick checks every target against the cache.
type Scheduler struct {
	interval time.Duration
	workers  int
	engine   Analyzer
	targets  []Target
}

// NewScheduler creates a scheduler for targets. workers <= 0 uses the default pool size.
func NewScheduler(interval time.Duration, workers int, engine Analyzer, targets []Target) *Scheduler {
	if workers <= 0 {
		workers = defaultWorkerCount
	}
	return &Scheduler{
		interval: interval,
		workers:  workers,
		engine:   engine,
		targets:  targets,
	}
}

// Start runs one pass immediately and then one per interval until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logger.Info().
		Dur("interval", s.interval).
		Int("targets", len(s.targets)).
		Int("workers", s.workers).
		Msg("[Warmup] Starting cache warmup scheduler")

	s.RunOnce(ctx)

	for {
		select {
		case <-ticker.C:
			s.RunOnce(ctx)
		case <-ctx.Done():
			logger.Info().Msg("[Warmup] Stopping (context cancelled)")
			return nil
		}
	}
}

// RunOnce warms every target whose cache entry is missing. Targets are spread over the
// worker pool by period id; one worker handles every target of a period in order.
func (s *Scheduler) RunOnce(ctx context.Context) Stats {
	workerCount := min(s.workers, len(s.targets))
	if workerCount <= 0 {
		return Stats{}
	}

	queues := make([][]Target, workerCount)
	for _, t := range s.targets {
		i := partition.For(t.PeriodID, workerCount)
		queues[i] = append(queues[i], t)
	}

	results := make(chan Stats, workerCount)
	var wg sync.WaitGroup
	wg.Add(workerCount)
	for _, queue := range queues {
		go func(queue []Target) {
			defer wg.Done()
			var local Stats
			for _, t := range queue {
				if ctx.Err() != nil {
					break
				}
				s.warm(ctx, t, &local)
			}
			results <- local
		}(queue)
	}
	wg.Wait()
	close(results)

	var total Stats
	for local := range results {
		total.Skipped += local.Skipped
		total.Computed += local.Computed
		total.Failed += local.Failed
	}

	zerolog.Ctx(ctx).Info().
		Int("computed", total.Computed).
		Int("skipped", total.Skipped).
		Int("failed", total.Failed).
		Msg("[Warmup] Pass complete")
	return total
}

func (s *Scheduler) warm(ctx context.Context, t Target, stats *Stats) {
	if s.engine.Cached(ctx, t.PeriodID, t.Filters) {
		stats.Skipped++
		return
	}

	result, _, err := s.engine.Analyze(ctx, analysis.AnalyzeRequest{
		TimePeriodID: t.PeriodID,
		Filters:      t.Filters,
		UserID:       UserID,
		UseCache:     false,
	})
	switch {
	case err != nil:
		zerolog.Ctx(ctx).Error().Err(err).Str("time_period_id", t.PeriodID).Msg("[Warmup] Analysis errored")
		stats.Failed++
	case result.Status != v1.StatusCompleted:
		zerolog.Ctx(ctx).Warn().
			Str("time_period_id", t.PeriodID).
			Str("error_message", result.ErrorMessage).
			Msg("[Warmup] Analysis did not complete")
		stats.Failed++
	default:
		stats.Computed++
	}
}
