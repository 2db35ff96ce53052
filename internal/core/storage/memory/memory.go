package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	v1 "github.com/freightpulse/freightpulse/internal/api/v1"
	"github.com/freightpulse/freightpulse/internal/core/period"
	"github.com/freightpulse/freightpulse/internal/core/storage"
)

// Store is an in-memory implementation of every storage interface.
// Useful for testing and development.
type Store struct {
	mu      sync.RWMutex
	records []v1.FreightRecord
	periods map[string]*v1.TimePeriod
	results map[string]*v1.AnalysisResult
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		periods: make(map[string]*v1.TimePeriod),
		results: make(map[string]*v1.AnalysisResult),
	}
}

// AddFreightRecords appends records, keeping them ordered by record date.
func (s *Store) AddFreightRecords(records ...v1.FreightRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, records...)
	slices.SortStableFunc(s.records, func(a, b v1.FreightRecord) int {
		return a.RecordDate.Compare(b.RecordDate)
	})
}

func (s *Store) GetFreightRecords(ctx context.Context, q storage.RecordQuery) ([]v1.FreightRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	window := period.Window{Start: period.TruncateToDay(q.StartDate), End: period.TruncateToDay(q.EndDate)}
	var out []v1.FreightRecord
	for _, rec := range s.records {
		if !window.Contains(rec.RecordDate) {
			continue
		}
		if !matches(q.OriginIDs, rec.OriginID) ||
			!matches(q.DestinationIDs, rec.DestinationID) ||
			!matches(q.CarrierIDs, rec.CarrierID) ||
			!matches(q.TransportModes, rec.TransportMode) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func matches(filter []string, v string) bool {
	return len(filter) == 0 || slices.Contains(filter, v)
}

func (s *Store) GetTimePeriod(ctx context.Context, id string) (*v1.TimePeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.periods[id]
	if !exists {
		return nil, storage.ErrNotFound
	}

	copy := *p
	return &copy, nil
}

// SaveTimePeriod stores p unless a period with the same id already exists.
func (s *Store) SaveTimePeriod(ctx context.Context, p *v1.TimePeriod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.periods[p.ID]; exists {
		return nil
	}
	copy := *p
	s.periods[p.ID] = &copy
	return nil
}

func (s *Store) CreateResult(ctx context.Context, r *v1.AnalysisResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copy := *r
	s.results[r.ID] = &copy
	return nil
}

func (s *Store) GetResult(ctx context.Context, id string) (*v1.AnalysisResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.results[id]
	if !exists {
		return nil, storage.ErrNotFound
	}

	copy := *r
	return &copy, nil
}

func (s *Store) UpdateResult(ctx context.Context, r *v1.AnalysisResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.results[r.ID]; !exists {
		return storage.ErrNotFound
	}
	copy := *r
	s.results[r.ID] = &copy
	return nil
}

func (s *Store) DeleteResult(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.results[id]; !exists {
		return storage.ErrNotFound
	}
	delete(s.results, id)
	return nil
}

func (s *Store) ListResults(ctx context.Context, opts storage.ListOptions) ([]*v1.AnalysisResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*v1.AnalysisResult
	for _, r := range s.results {
		if opts.UserID != "" && r.UserID != opts.UserID {
			continue
		}
		copy := *r
		matched = append(matched, &copy)
	}

	slices.SortFunc(matched, func(a, b *v1.AnalysisResult) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	if opts.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

// WithinTx runs fn against a staged view of the results and applies it only if fn succeeds.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, stores storage.Stores) error) error {
	stage := &txResults{parent: s, pending: make(map[string]*v1.AnalysisResult), deleted: make(map[string]bool)}
	if err := fn(ctx, storage.Stores{Results: stage}); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range stage.deleted {
		delete(s.results, id)
	}
	for id, r := range stage.pending {
		s.results[id] = r
	}
	return nil
}

// txResults buffers writes until WithinTx commits them.
type txResults struct {
	mu      sync.Mutex
	parent  *Store
	pending map[string]*v1.AnalysisResult
	deleted map[string]bool
}

func (t *txResults) CreateResult(ctx context.Context, r *v1.AnalysisResult) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	copy := *r
	t.pending[r.ID] = &copy
	delete(t.deleted, r.ID)
	return nil
}

func (t *txResults) GetResult(ctx context.Context, id string) (*v1.AnalysisResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.deleted[id] {
		return nil, storage.ErrNotFound
	}
	if r, ok := t.pending[id]; ok {
		copy := *r
		return &copy, nil
	}
	return t.parent.GetResult(ctx, id)
}

func (t *txResults) UpdateResult(ctx context.Context, r *v1.AnalysisResult) error {
	if _, err := t.GetResult(ctx, r.ID); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	copy := *r
	t.pending[r.ID] = &copy
	return nil
}

func (t *txResults) DeleteResult(ctx context.Context, id string) error {
	if _, err := t.GetResult(ctx, id); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.pending, id)
	t.deleted[id] = true
	return nil
}

// ListResults reads committed rows only.
func (t *txResults) ListResults(ctx context.Context, opts storage.ListOptions) ([]*v1.AnalysisResult, error) {
	return t.parent.ListResults(ctx, opts)
}
