package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Saranya396/projectt/internal/adapters/cache"
	"github.com/Saranya396/projectt/internal/domain/repositories"
	"github.com/Saranya396/projectt/internal/infrastructure/clients/postgres"
	redisclient "github.com/Saranya396/projectt/internal/infrastructure/clients/redis"
	"github.com/Saranya396/projectt/internal/infrastructure/observability"
	"github.com/Saranya396/projectt/pkg/config"
)

const cacheKeyPrefix = "slotcache:"

// Handle is an opened record store together with the clients backing it
type Handle struct {
	Store   repositories.RecordStore
	closers []func() error
}

// Close releases every client opened by New
func (h *Handle) Close() error {
	var firstErr error
	for i := len(h.closers) - 1; i >= 0; i-- {
		if err := h.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// New opens the record store selected by cfg.Store. The result is always
// instrumented. Non-Redis backends are wrapped in a Redis read-through cache
// when caching is enabled and Redis is reachable.
func New(ctx context.Context, cfg *config.Config, metrics *observability.Metrics) (*Handle, error) {
	h := &Handle{}

	var redisClient *redisclient.Client
	openRedis := func() (*redisclient.Client, error) {
		if redisClient != nil {
			return redisClient, nil
		}
		c, err := redisclient.NewClient(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		h.closers = append(h.closers, c.Close)
		redisClient = c
		return c, nil
	}

	var store repositories.RecordStore
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		store = NewMemoryStore()
	case config.StoreBackendRedis:
		c, err := openRedis()
		if err != nil {
			return nil, err
		}
		store = NewRedisStore(c, cfg.Store.KeyPrefix)
	case config.StoreBackendPostgres:
		pg, err := postgres.NewClient(ctx, &cfg.Database)
		if err != nil {
			_ = h.Close()
			return nil, err
		}
		h.closers = append(h.closers, pg.Close)
		pgStore := NewPostgresStore(pg, cfg.Store.KeyPrefix)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			_ = h.Close()
			return nil, err
		}
		store = pgStore
	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}
	store = NewInstrumentedStore(store, cfg.Store.Backend, metrics)

	switch {
	case !cfg.Store.CacheEnabled:
	case cfg.Store.Backend == config.StoreBackendRedis:
		log.Info().Msg("slot cache skipped, slots already live in Redis")
	default:
		c, err := openRedis()
		if err != nil {
			log.Warn().Err(err).Msg("slot cache disabled, Redis unavailable")
		} else {
			provider := cache.NewRedisAdapter(c, cfg.Store.KeyPrefix+cacheKeyPrefix)
			store = NewCachedStore(store, provider, cfg.Store.CacheTTL, metrics)
			log.Info().Dur("ttl", cfg.Store.CacheTTL).Msg("slot cache enabled")
		}
	}

	h.Store = store
	log.Info().Str("backend", cfg.Store.Backend).Msg("record store ready")
	return h, nil
}
