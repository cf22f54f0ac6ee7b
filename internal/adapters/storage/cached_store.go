package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Saranya396/projectt/internal/domain/providers"
	"github.com/Saranya396/projectt/internal/domain/repositories"
	"github.com/Saranya396/projectt/internal/infrastructure/observability"
)

// CachedStore is a read-through cache in front of another record store.
// Writes go to the underlying store and then drop the cached slot.
//
// Each write bumps a per-slot generation. A read only fills the cache when
// no write to the slot finished since its miss, so a payload fetched before
// a write is never cached after it. Generations are per process; instances
// sharing one cache still rely on the TTL.
type CachedStore struct {
	store   repositories.RecordStore
	cache   providers.CacheProvider
	ttl     time.Duration
	metrics *observability.Metrics

	mu          sync.Mutex
	generations map[string]uint64
}

// NewCachedStore wraps store with cache
func NewCachedStore(store repositories.RecordStore, cache providers.CacheProvider, ttl time.Duration, metrics *observability.Metrics) *CachedStore {
	return &CachedStore{
		store:       store,
		cache:       cache,
		ttl:         ttl,
		metrics:     metrics,
		generations: make(map[string]uint64),
	}
}

var _ repositories.RecordStore = (*CachedStore)(nil)

// Read serves the slot from cache when present
func (s *CachedStore) Read(ctx context.Context, key string) ([]byte, error) {
	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		observability.RecordCacheHit(ctx, s.metrics, key)
		return cached, nil
	}
	if !errors.Is(err, providers.ErrCacheMiss) {
		log.Warn().Err(err).Str("key", key).Msg("slot cache read failed")
	}
	observability.RecordCacheMiss(ctx, s.metrics, key)

	s.mu.Lock()
	generation := s.generations[key]
	s.mu.Unlock()

	payload, err := s.store.Read(ctx, key)
	if err != nil || payload == nil {
		return payload, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[key] != generation {
		// written since the miss; payload may predate the write
		return payload, nil
	}
	if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache slot")
	}
	return payload, nil
}

// Write stores the slot and invalidates its cache entry
func (s *CachedStore) Write(ctx context.Context, key string, payload []byte) error {
	if err := s.store.Write(ctx, key, payload); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[key]++
	if err := s.cache.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to invalidate cached slot")
	}
	return nil
}

// Keys is never cached
func (s *CachedStore) Keys(ctx context.Context) ([]string, error) {
	return s.store.Keys(ctx)
}
