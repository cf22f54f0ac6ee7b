package storage

import (
	"context"
	"time"

	"github.com/Saranya396/projectt/internal/domain/repositories"
	"github.com/Saranya396/projectt/internal/infrastructure/observability"
)

// InstrumentedStore traces and times every call to the wrapped store
type InstrumentedStore struct {
	store   repositories.RecordStore
	backend string
	metrics *observability.Metrics
}

// NewInstrumentedStore wraps store, labelling metrics with backend
func NewInstrumentedStore(store repositories.RecordStore, backend string, metrics *observability.Metrics) *InstrumentedStore {
	return &InstrumentedStore{store: store, backend: backend, metrics: metrics}
}

var _ repositories.RecordStore = (*InstrumentedStore)(nil)

func (s *InstrumentedStore) Read(ctx context.Context, key string) ([]byte, error) {
	ctx, span := observability.StartSpan(ctx, "store.Read")
	defer span.End()

	start := time.Now()
	payload, err := s.store.Read(ctx, key)
	observability.RecordStoreMetric(ctx, s.metrics, s.backend, "read", time.Since(start))
	observability.RecordError(span, err)
	return payload, err
}

func (s *InstrumentedStore) Write(ctx context.Context, key string, payload []byte) error {
	ctx, span := observability.StartSpan(ctx, "store.Write")
	defer span.End()

	start := time.Now()
	err := s.store.Write(ctx, key, payload)
	observability.RecordStoreMetric(ctx, s.metrics, s.backend, "write", time.Since(start))
	observability.RecordError(span, err)
	return err
}

func (s *InstrumentedStore) Keys(ctx context.Context) ([]string, error) {
	ctx, span := observability.StartSpan(ctx, "store.Keys")
	defer span.End()

	start := time.Now()
	keys, err := s.store.Keys(ctx)
	observability.RecordStoreMetric(ctx, s.metrics, s.backend, "keys", time.Since(start))
	observability.RecordError(span, err)
	return keys, err
}
