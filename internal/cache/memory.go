package cache

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/freightpulse/freightpulse/internal/core/partition"
	"github.com/rs/zerolog"
)

// MemoryStore is a thread-safe, sharded LRU cache with per-entry expiry.
// Each shard holds at most capacity/shards entries and evicts its least recently used.
type MemoryStore struct {
	namespace string
	shards    []*lruShard
	now       func() time.Time
}

type lruShard struct {
	mu       sync.Mutex
	capacity int
	cache    map[string]*list.Element
	order    *list.List
}

type memoryEntry struct {
	key       string
	payload   []byte
	expiresAt time.Time
}

// NewMemoryStore creates a memory cache holding roughly capacity entries.
// Only keys under namespace are counted by Clear.
func NewMemoryStore(namespace string, capacity, shards int) *MemoryStore {
	if shards <= 0 {
		shards = partition.DefaultShards
	}
	perShard := capacity / shards
	if perShard < 1 {
		perShard = 1
	}

	s := &MemoryStore{
		namespace: namespace,
		shards:    make([]*lruShard, shards),
		now:       time.Now,
	}
	for i := range s.shards {
		s.shards[i] = &lruShard{
			capacity: perShard,
			cache:    make(map[string]*list.Element),
			order:    list.New(),
		}
	}
	return s
}

func (s *MemoryStore) shard(key string) *lruShard {
	return s.shards[partition.For(key, len(s.shards))]
}

// Get returns a copy of the payload. Expired entries are dropped on read.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	sh := s.shard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	elem, exists := sh.cache[key]
	if !exists {
		return nil, false, nil
	}

	entry := elem.Value.(*memoryEntry)
	if !s.now().Before(entry.expiresAt) {
		sh.remove(elem)
		return nil, false, nil
	}

	// Move to front (most recently used)
	sh.order.MoveToFront(elem)
	return append([]byte(nil), entry.payload...), true, nil
}

// Set stores a copy of payload, evicting the shard's least recently used entry if full.
func (s *MemoryStore) Set(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	sh := s.shard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	expiresAt := s.now().Add(ttl)
	copied := append([]byte(nil), payload...)

	// If already exists, update and move to front
	if elem, exists := sh.cache[key]; exists {
		sh.order.MoveToFront(elem)
		entry := elem.Value.(*memoryEntry)
		entry.payload = copied
		entry.expiresAt = expiresAt
		return nil
	}

	if sh.order.Len() >= sh.capacity {
		if oldest := sh.order.Back(); oldest != nil {
			sh.remove(oldest)
		}
	}

	elem := sh.order.PushFront(&memoryEntry{key: key, payload: copied, expiresAt: expiresAt})
	sh.cache[key] = elem
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	sh := s.shard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if elem, exists := sh.cache[key]; exists {
		sh.remove(elem)
	}
	return nil
}

// Clear removes every live entry under the namespace.
func (s *MemoryStore) Clear(_ context.Context) (int, error) {
	now := s.now()
	removed := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		for key, elem := range sh.cache {
			if !strings.HasPrefix(key, s.namespace+":") {
				continue
			}
			if now.Before(elem.Value.(*memoryEntry).expiresAt) {
				removed++
			}
			sh.remove(elem)
		}
		sh.mu.Unlock()
	}
	return removed, nil
}

// Len reports the number of stored entries, expired ones included until evicted.
func (s *MemoryStore) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		n += sh.order.Len()
		sh.mu.Unlock()
	}
	return n
}

// EvictExpired drops every expired entry and returns how many were dropped.
func (s *MemoryStore) EvictExpired() int {
	now := s.now()
	evicted := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		for _, elem := range sh.cache {
			if !now.Before(elem.Value.(*memoryEntry).expiresAt) {
				sh.remove(elem)
				evicted++
			}
		}
		sh.mu.Unlock()
	}
	return evicted
}

// RunJanitor evicts expired entries every interval until ctx is cancelled.
func (s *MemoryStore) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.EvictExpired(); n > 0 {
				zerolog.Ctx(ctx).Debug().Int("evicted", n).Int("remaining", s.Len()).Msg("[MemoryCache] Evicted expired entries")
			}
		}
	}
}

func (sh *lruShard) remove(elem *list.Element) {
	entry := elem.Value.(*memoryEntry)
	delete(sh.cache, entry.key)
	sh.order.Remove(elem)
}
