package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	v1 "github.com/freightpulse/freightpulse/internal/api/v1"
	"github.com/freightpulse/freightpulse/internal/cache"
	"github.com/freightpulse/freightpulse/internal/core/calculation"
	"github.com/freightpulse/freightpulse/internal/core/storage"
	"github.com/freightpulse/freightpulse/internal/events"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	cancelledMessage = "Analysis cancelled"

	// failureWriteTimeout bounds the write that records a failure, which must outlive
	// a cancelled request context.
	failureWriteTimeout = 5 * time.Second
)

// Engine orchestrates freight price-movement analyses.
// It is safe for concurrent use; concurrent identical requests may both compute.
type Engine struct {
	periods   storage.TimePeriodStore
	records   storage.FreightRecordStore
	results   storage.ResultStore
	tx        storage.Transactor
	cache     cache.Store
	converter calculation.Converter
	publisher events.Publisher
	cfg       Config
	nowFn     func() time.Time
	newID     func() string
}

// NewEngine wires an engine. Zero config values fall back to DefaultConfig.
func NewEngine(deps Dependencies, cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = def.CacheTTL
	}
	if cfg.CacheNamespace == "" {
		cfg.CacheNamespace = def.CacheNamespace
	}
	if cfg.CacheTimeout <= 0 {
		cfg.CacheTimeout = def.CacheTimeout
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = def.FetchTimeout
	}
	if cfg.MovingAverageWindow <= 0 {
		cfg.MovingAverageWindow = def.MovingAverageWindow
	}

	publisher := deps.Publisher
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	return &Engine{
		periods:   deps.Periods,
		records:   deps.Records,
		results:   deps.Results,
		tx:        deps.Transactor,
		cache:     deps.Cache,
		converter: deps.Converter,
		publisher: publisher,
		cfg:       cfg,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
		newID: uuid.NewString,
	}
}

// Analyze runs one analysis. Failures after the pending result is persisted come back as a
// failed result with a nil error, except invalid calculation input which is also returned.
// The boolean reports a cache hit.
func (e *Engine) Analyze(ctx context.Context, req AnalyzeRequest) (*v1.AnalysisResult, bool, error) {
	if req.TimePeriodID == "" {
		return nil, false, invalidRequestf("time_period_id is required")
	}
	format, err := v1.ParseOutputFormat(string(req.OutputFormat))
	if err != nil {
		return nil, false, invalidRequestf("%v", err)
	}

	filters := req.Filters.Normalized()
	now := e.nowFn()
	result := &v1.AnalysisResult{
		ID:           e.newID(),
		UserID:       req.UserID,
		TimePeriodID: req.TimePeriodID,
		Parameters:   filters,
		Status:       v1.StatusPending,
		OutputFormat: format,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := e.results.CreateResult(ctx, result); err != nil {
		return nil, false, fmt.Errorf("create analysis result: %w", err)
	}

	logger := zerolog.Ctx(ctx).With().
		Str("analysis_id", result.ID).
		Str("time_period_id", result.TimePeriodID).
		Logger()
	ctx = logger.WithContext(ctx)

	key := cache.Key(e.cfg.CacheNamespace, req.TimePeriodID, filters)
	if req.UseCache {
		if entry, ok := e.lookupCache(ctx, key); ok {
			if err := e.completeFromCache(ctx, result, entry); err != nil {
				return e.fail(ctx, result, err)
			}
			logger.Info().Msg("[Analysis] Served from cache")
			return result, true, nil
		}
	}

	if err := e.run(ctx, result, key); err != nil {
		return e.fail(ctx, result, err)
	}
	return result, false, nil
}

func (e *Engine) completeFromCache(ctx context.Context, result *v1.AnalysisResult, entry cache.Entry) error {
	if err := advance(result, v1.StatusCompleted, e.nowFn()); err != nil {
		return err
	}
	result.ApplyResults(entry.Results)
	result.IsCached = true
	expiresAt := entry.ExpiresAt
	result.CacheExpiresAt = &expiresAt

	if err := e.withinTx(ctx, func(ctx context.Context, s storage.Stores) error {
		return s.Results.UpdateResult(ctx, result)
	}); err != nil {
		return fmt.Errorf("persist cached result: %w", err)
	}
	e.publish(ctx, result)
	return nil
}

// run covers everything from the processing transition to the completion write.
func (e *Engine) run(ctx context.Context, result *v1.AnalysisResult, key string) error {
	if err := advance(result, v1.StatusProcessing, e.nowFn()); err != nil {
		return err
	}
	if err := e.results.UpdateResult(ctx, result); err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}

	p, records, err := e.fetch(ctx, result.TimePeriodID, result.Parameters)
	if err != nil {
		return err
	}

	res, err := e.calculatePriceMovement(ctx, p, records, result.Parameters)
	if err != nil {
		return err
	}

	if err := advance(result, v1.StatusCompleted, e.nowFn()); err != nil {
		return err
	}
	result.ApplyResults(res)
	if err := e.withinTx(ctx, func(ctx context.Context, s storage.Stores) error {
		return s.Results.UpdateResult(ctx, result)
	}); err != nil {
		return fmt.Errorf("persist completed result: %w", err)
	}

	e.storeCache(ctx, key, res)
	e.publish(ctx, result)

	zerolog.Ctx(ctx).Info().
		Int("data_points", res.DataPoints).
		Str("percentage_change", res.PercentageChange.String()).
		Str("trend", string(res.TrendDirection)).
		Msg("[Analysis] Completed")
	return nil
}

func (e *Engine) fetch(ctx context.Context, periodID string, filters v1.Filters) (*v1.TimePeriod, []v1.FreightRecord, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, e.cfg.FetchTimeout)
	defer cancel()

	p, err := e.periods.GetTimePeriod(fetchCtx, periodID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, analysisErrorf("Time period not found")
		}
		return nil, nil, fmt.Errorf("load time period: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, nil, analysisErrorf("Invalid time period: %v", err)
	}

	records, err := e.records.GetFreightRecords(fetchCtx, storage.QueryFromFilters(p.StartDate, p.EndDate, filters))
	if err != nil {
		return nil, nil, fmt.Errorf("load freight records: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, analysisErrorf("No freight data available for analysis")
	}
	return p, records, nil
}

// fail is the single failure boundary of Analyze.
func (e *Engine) fail(ctx context.Context, result *v1.AnalysisResult, cause error) (*v1.AnalysisResult, bool, error) {
	logger := zerolog.Ctx(ctx)
	if errors.Is(cause, ErrAnalysis) {
		logger.Warn().Err(cause).Msg("[Analysis] Failed")
	} else {
		logger.Error().Err(cause).Msg("[Analysis] Failed")
	}

	// The stored row is still pending or processing even if the in-memory copy advanced.
	result.Status = v1.StatusFailed
	result.ErrorMessage = failureMessage(cause)
	result.ClearResults()
	result.UpdatedAt = e.nowFn()

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), failureWriteTimeout)
	defer cancel()
	if err := e.results.UpdateResult(writeCtx, result); err != nil {
		logger.Error().Err(err).Msg("[Analysis] Could not persist failure")
	}
	e.publish(writeCtx, result)

	if propagates(cause) {
		return result, false, cause
	}
	return result, false, nil
}

func (e *Engine) lookupCache(ctx context.Context, key string) (cache.Entry, bool) {
	if e.cache == nil {
		return cache.Entry{}, false
	}
	cacheCtx, cancel := context.WithTimeout(ctx, e.cfg.CacheTimeout)
	defer cancel()

	payload, ok, err := e.cache.Get(cacheCtx, key)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("[Analysis] Cache read failed")
		return cache.Entry{}, false
	}
	if !ok {
		return cache.Entry{}, false
	}
	entry, err := cache.DecodeEntry(payload)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("[Analysis] Ignoring unreadable cache entry")
		return cache.Entry{}, false
	}
	return entry, true
}

// Cached reports whether a readable cache entry exists for the period and filters.
func (e *Engine) Cached(ctx context.Context, periodID string, filters v1.Filters) bool {
	_, ok := e.lookupCache(ctx, cache.Key(e.cfg.CacheNamespace, periodID, filters.Normalized()))
	return ok
}

func (e *Engine) storeCache(ctx context.Context, key string, res *v1.Results) {
	if e.cache == nil {
		return
	}
	payload, err := cache.NewEntry(res, e.nowFn(), e.cfg.CacheTTL).Encode()
	if err == nil {
		cacheCtx, cancel := context.WithTimeout(ctx, e.cfg.CacheTimeout)
		err = e.cache.Set(cacheCtx, key, payload, e.cfg.CacheTTL)
		cancel()
	}
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("[Analysis] Cache write failed")
	}
}

func (e *Engine) publish(ctx context.Context, result *v1.AnalysisResult) {
	if err := e.publisher.Publish(ctx, events.FromResult(result, e.nowFn())); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("status", string(result.Status)).Msg("[Analysis] Event publish failed")
	}
}

func (e *Engine) withinTx(ctx context.Context, fn func(ctx context.Context, s storage.Stores) error) error {
	if e.tx == nil {
		return fn(ctx, storage.Stores{Results: e.results})
	}
	return e.tx.WithinTx(ctx, fn)
}

// advance moves r to next, rejecting transitions the lifecycle does not allow.
func advance(r *v1.AnalysisResult, next v1.AnalysisStatus, now time.Time) error {
	ok, err := r.Status.CanTransition(next)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("illegal status transition %s -> %s", r.Status, next)
	}
	r.Status = next
	r.UpdatedAt = now
	return nil
}

// GetResult returns the stored result, or nil when id does not exist.
func (e *Engine) GetResult(ctx context.Context, id string) (*v1.AnalysisResult, error) {
	r, err := e.results.GetResult(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis result: %w", err)
	}
	return r, nil
}

// ListResults returns results newest first, optionally scoped to one user.
func (e *Engine) ListResults(ctx context.Context, opts storage.ListOptions) ([]*v1.AnalysisResult, error) {
	switch {
	case opts.Limit <= 0:
		opts.Limit = DefaultListLimit
	case opts.Limit > MaxListLimit:
		opts.Limit = MaxListLimit
	}
	if opts.Offset < 0 {
		return nil, invalidRequestf("offset must not be negative")
	}

	results, err := e.results.ListResults(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list analysis results: %w", err)
	}
	return results, nil
}

// DeleteResult deletes a result and its cache entry. It reports false when the result does
// not exist or userID is set and does not own it.
func (e *Engine) DeleteResult(ctx context.Context, id, userID string) (bool, error) {
	var deleted *v1.AnalysisResult
	err := e.withinTx(ctx, func(ctx context.Context, s storage.Stores) error {
		r, err := s.Results.GetResult(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if userID != "" && r.UserID != userID {
			return nil
		}
		if err := s.Results.DeleteResult(ctx, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil
			}
			return err
		}
		deleted = r
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete analysis result: %w", err)
	}
	if deleted == nil {
		return false, nil
	}

	if e.cache != nil {
		key := cache.Key(e.cfg.CacheNamespace, deleted.TimePeriodID, deleted.Parameters)
		if err := e.cache.Delete(ctx, key); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("analysis_id", id).Msg("[Analysis] Cache invalidation failed")
		}
	}
	return true, nil
}

// Rerun analyzes again with the stored parameters of result id. It returns a nil result
// when id does not exist.
func (e *Engine) Rerun(ctx context.Context, id string, useCache bool) (*v1.AnalysisResult, bool, error) {
	orig, err := e.GetResult(ctx, id)
	if err != nil || orig == nil {
		return nil, false, err
	}
	return e.Analyze(ctx, AnalyzeRequest{
		TimePeriodID: orig.TimePeriodID,
		Filters:      orig.Parameters,
		UserID:       orig.UserID,
		OutputFormat: orig.OutputFormat,
		UseCache:     useCache,
	})
}

// Compare analyzes both periods concurrently and diffs their end values.
func (e *Engine) Compare(ctx context.Context, req CompareRequest) (*v1.Comparison, error) {
	if req.BasePeriodID == "" || req.ComparisonPeriodID == "" {
		return nil, invalidRequestf("base_period_id and comparison_period_id are required")
	}

	var base, comparison *v1.AnalysisResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, _, err := e.Analyze(gctx, AnalyzeRequest{TimePeriodID: req.BasePeriodID, Filters: req.Filters, UserID: req.UserID, UseCache: true})
		base = r
		return err
	})
	g.Go(func() error {
		r, _, err := e.Analyze(gctx, AnalyzeRequest{TimePeriodID: req.ComparisonPeriodID, Filters: req.Filters, UserID: req.UserID, UseCache: true})
		comparison = r
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if base.Status != v1.StatusCompleted {
		return nil, analysisErrorf("base analysis failed: %s", base.ErrorMessage)
	}
	if comparison.Status != v1.StatusCompleted {
		return nil, analysisErrorf("comparison analysis failed: %s", comparison.ErrorMessage)
	}

	diff, err := difference(base.EndValue, comparison.EndValue)
	if err != nil {
		return nil, err
	}
	return &v1.Comparison{Base: base, Comparison: comparison, Difference: diff}, nil
}

// InvalidateCache removes the cache entry backing analysis id, or every entry when id is empty.
// It returns how many entries were removed.
func (e *Engine) InvalidateCache(ctx context.Context, id string) (int, error) {
	if e.cache == nil {
		return 0, nil
	}
	if id == "" {
		n, err := e.cache.Clear(ctx)
		if err != nil {
			return 0, fmt.Errorf("clear cache: %w", err)
		}
		zerolog.Ctx(ctx).Info().Int("entries", n).Msg("[Analysis] Cache cleared")
		return n, nil
	}

	r, err := e.GetResult(ctx, id)
	if err != nil || r == nil {
		return 0, err
	}
	key := cache.Key(e.cfg.CacheNamespace, r.TimePeriodID, r.Parameters)
	_, present, err := e.cache.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("read cache entry: %w", err)
	}
	if !present {
		return 0, nil
	}
	if err := e.cache.Delete(ctx, key); err != nil {
		return 0, fmt.Errorf("delete cache entry: %w", err)
	}
	return 1, nil
}

// CancelAnalysis marks a pending or processing result failed. It reports false when the
// result is missing, owned by someone else or already terminal.
// A computation still running for the result may overwrite the cancellation when it completes.
func (e *Engine) CancelAnalysis(ctx context.Context, id, userID string) (bool, error) {
	var cancelled *v1.AnalysisResult
	err := e.withinTx(ctx, func(ctx context.Context, s storage.Stores) error {
		r, err := s.Results.GetResult(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if userID != "" && r.UserID != userID {
			return nil
		}
		if r.Status.Terminal() {
			return nil
		}
		if err := advance(r, v1.StatusFailed, e.nowFn()); err != nil {
			return err
		}
		r.ErrorMessage = cancelledMessage
		if err := s.Results.UpdateResult(ctx, r); err != nil {
			return err
		}
		cancelled = r
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("cancel analysis: %w", err)
	}
	if cancelled == nil {
		return false, nil
	}
	e.publish(ctx, cancelled)
	return true, nil
}
