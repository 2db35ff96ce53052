package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	v1 "github.com/freightpulse/freightpulse/internal/api/v1"
)

// DefaultNamespace prefixes every analysis cache key.
const DefaultNamespace = "freightpulse:analysis"

// Store is a byte-oriented key-value store with per-entry TTL.
// A miss is (nil, false, nil); errors are reserved for backend failures.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Clear removes every entry in the store's namespace and reports how many were removed.
	Clear(ctx context.Context) (int, error)
}

// Key derives the cache key for an analysis of periodID with the given filters.
// Filters are normalized first so equivalent requests share one entry.
func Key(namespace, periodID string, filters v1.Filters) string {
	identity := struct {
		TimePeriodID string     `json:"time_period_id"`
		Filters      v1.Filters `json:"filters"`
	}{periodID, filters.Normalized()}

	// Marshalling a struct of strings and string slices cannot fail.
	raw, _ := json.Marshal(identity)
	sum := sha256.Sum256(raw)
	return namespace + ":" + hex.EncodeToString(sum[:])
}

// Entry is the cached projection of a completed analysis.
type Entry struct {
	Results   *v1.Results `json:"results"`
	CachedAt  time.Time   `json:"cached_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// NewEntry wraps results cached at now for ttl.
func NewEntry(results *v1.Results, now time.Time, ttl time.Duration) Entry {
	return Entry{Results: results, CachedAt: now, ExpiresAt: now.Add(ttl)}
}

// Encode marshals the entry to its JSON payload.
func (e Entry) Encode() ([]byte, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode cache entry: %w", err)
	}
	return payload, nil
}

// DecodeEntry parses a payload written by Entry.Encode.
func DecodeEntry(payload []byte) (Entry, error) {
	var e Entry
	if err := json.Unmarshal(payload, &e); err != nil {
		return Entry{}, fmt.Errorf("decode cache entry: %w", err)
	}
	if e.Results == nil {
		return Entry{}, fmt.Errorf("decode cache entry: missing results")
	}
	return e, nil
}
