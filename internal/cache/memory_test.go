package cache

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestMemoryStore(capacity, shards int) (*MemoryStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)}
	s := NewMemoryStore("ns", capacity, shards)
	s.now = clock.Now
	return s, clock
}

func TestMemoryStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestMemoryStore(100, 4)

	_, ok, err := s.Get(ctx, "ns:a")
	require.NoError(t, err)
	require.False(t, ok)

	payload := []byte("payload")
	require.NoError(t, s.Set(ctx, "ns:a", payload, time.Minute))
	payload[0] = 'X'

	got, ok, err := s.Get(ctx, "ns:a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "payload", string(got), "store must keep its own copy")

	require.NoError(t, s.Set(ctx, "ns:a", []byte("updated"), time.Minute))
	got, _, _ = s.Get(ctx, "ns:a")
	require.Equal(t, "updated", string(got))

	require.NoError(t, s.Delete(ctx, "ns:a"))
	require.NoError(t, s.Delete(ctx, "ns:a"))
	_, ok, _ = s.Get(ctx, "ns:a")
	require.False(t, ok)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestMemoryStore(100, 4)

	require.NoError(t, s.Set(ctx, "ns:a", []byte("a"), time.Minute))
	clock.Advance(59 * time.Second)
	_, ok, _ := s.Get(ctx, "ns:a")
	require.True(t, ok)

	clock.Advance(time.Second)
	_, ok, _ = s.Get(ctx, "ns:a")
	require.False(t, ok)
	require.Equal(t, 0, s.Len())
}

func TestMemoryStore_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestMemoryStore(2, 1)

	require.NoError(t, s.Set(ctx, "ns:a", []byte("a"), time.Minute))
	require.NoError(t, s.Set(ctx, "ns:b", []byte("b"), time.Minute))
	_, _, _ = s.Get(ctx, "ns:a")
	require.NoError(t, s.Set(ctx, "ns:c", []byte("c"), time.Minute))

	_, ok, _ := s.Get(ctx, "ns:b")
	require.False(t, ok, "b was least recently used")
	_, ok, _ = s.Get(ctx, "ns:a")
	require.True(t, ok)
	_, ok, _ = s.Get(ctx, "ns:c")
	require.True(t, ok)
}

func TestMemoryStore_ClearScopedToNamespace(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestMemoryStore(100, 4)

	require.NoError(t, s.Set(ctx, "ns:a", []byte("a"), time.Minute))
	require.NoError(t, s.Set(ctx, "ns:b", []byte("b"), time.Hour))
	require.NoError(t, s.Set(ctx, "other:c", []byte("c"), time.Hour))
	clock.Advance(2 * time.Minute)

	n, err := s.Clear(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n, "expired entries are dropped but not counted")

	_, ok, _ := s.Get(ctx, "other:c")
	require.True(t, ok)
	require.Equal(t, 1, s.Len())
}

func TestMemoryStore_EvictExpired(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestMemoryStore(100, 4)

	for i := 0; i < 10; i++ {
		ttl := time.Minute
		if i%2 == 0 {
			ttl = time.Hour
		}
		require.NoError(t, s.Set(ctx, fmt.Sprintf("ns:%d", i), []byte("v"), ttl))
	}
	clock.Advance(5 * time.Minute)

	require.Equal(t, 5, s.EvictExpired())
	require.Equal(t, 5, s.Len())
}

func TestMemoryStore_RunJanitorStopsOnCancel(t *testing.T) {
	s, clock := newTestMemoryStore(100, 4)
	require.NoError(t, s.Set(context.Background(), "ns:a", []byte("a"), time.Minute))
	clock.Advance(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.RunJanitor(ctx, time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancel")
	}
}

func TestMemoryStore_RunJanitorLogsRemainingEntries(t *testing.T) {
	s, clock := newTestMemoryStore(100, 4)
	require.NoError(t, s.Set(context.Background(), "ns:short", []byte("a"), time.Minute))
	require.NoError(t, s.Set(context.Background(), "ns:long", []byte("b"), 24*time.Hour))
	clock.Advance(time.Hour)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx, cancel := context.WithCancel(logger.WithContext(context.Background()))
	done := make(chan struct{})
	go func() {
		s.RunJanitor(ctx, time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return s.Len() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	require.Contains(t, buf.String(), `"evicted":1`)
	require.Contains(t, buf.String(), `"remaining":1`)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore("ns", 1000, 8)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("ns:%d", i%50)
				_ = s.Set(ctx, key, []byte{byte(w)}, time.Minute)
				_, _, _ = s.Get(ctx, key)
				if i%25 == 0 {
					_ = s.Delete(ctx, key)
				}
			}
		}(w)
	}
	wg.Wait()

	require.LessOrEqual(t, s.Len(), 50)
}
