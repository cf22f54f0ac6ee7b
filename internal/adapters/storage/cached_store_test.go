package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Saranya396/projectt/internal/adapters/cache"
	"github.com/Saranya396/projectt/internal/domain/providers"
	"github.com/Saranya396/projectt/internal/domain/repositories"
)

// MockCacheProvider is a mock implementation of CacheProvider
type MockCacheProvider struct {
	mock.Mock
}

func (m *MockCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheProvider) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func TestCachedStore_Read(t *testing.T) {
	ctx := context.Background()

	t.Run("hit skips the underlying store", func(t *testing.T) {
		// Arrange
		inner := NewMemoryStore()
		mockCache := new(MockCacheProvider)
		mockCache.On("Get", ctx, "medicare.users").Return([]byte(`[{"id":9}]`), nil)
		store := NewCachedStore(inner, mockCache, time.Minute, nil)

		// Act
		payload, err := store.Read(ctx, "medicare.users")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, `[{"id":9}]`, string(payload))
		mockCache.AssertExpectations(t)
	})

	t.Run("miss loads and fills the cache", func(t *testing.T) {
		inner := NewMemoryStore()
		require.NoError(t, inner.Write(ctx, "medicare.users", []byte(`[]`)))
		mockCache := new(MockCacheProvider)
		mockCache.On("Get", ctx, "medicare.users").Return(nil, providers.ErrCacheMiss)
		mockCache.On("Set", ctx, "medicare.users", []byte(`[]`), time.Minute).Return(nil)
		store := NewCachedStore(inner, mockCache, time.Minute, nil)

		payload, err := store.Read(ctx, "medicare.users")

		require.NoError(t, err)
		assert.Equal(t, `[]`, string(payload))
		mockCache.AssertExpectations(t)
	})

	t.Run("missing slot is not cached", func(t *testing.T) {
		mockCache := new(MockCacheProvider)
		mockCache.On("Get", ctx, "medicare.users").Return(nil, providers.ErrCacheMiss)
		store := NewCachedStore(NewMemoryStore(), mockCache, time.Minute, nil)

		payload, err := store.Read(ctx, "medicare.users")

		require.NoError(t, err)
		assert.Nil(t, payload)
		mockCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache failure falls back to the store", func(t *testing.T) {
		inner := NewMemoryStore()
		require.NoError(t, inner.Write(ctx, "medicare.users", []byte(`[]`)))
		mockCache := new(MockCacheProvider)
		mockCache.On("Get", ctx, "medicare.users").Return(nil, errors.New("i/o timeout"))
		mockCache.On("Set", ctx, "medicare.users", mock.Anything, time.Minute).Return(errors.New("i/o timeout"))
		store := NewCachedStore(inner, mockCache, time.Minute, nil)

		payload, err := store.Read(ctx, "medicare.users")

		require.NoError(t, err)
		assert.Equal(t, `[]`, string(payload))
	})
}

func TestCachedStore_WriteInvalidates(t *testing.T) {
	ctx := context.Background()
	client, _ := newMiniredisClient(t)
	inner := NewMemoryStore()
	store := NewCachedStore(inner, cache.NewRedisAdapter(client, "slotcache:"), time.Minute, nil)

	require.NoError(t, store.Write(ctx, "medicare.users", []byte(`[1]`)))
	first, err := store.Read(ctx, "medicare.users")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(first))

	// a write that bypasses the cache is invisible until invalidated
	require.NoError(t, inner.Write(ctx, "medicare.users", []byte(`[2]`)))
	stale, err := store.Read(ctx, "medicare.users")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(stale))

	require.NoError(t, store.Write(ctx, "medicare.users", []byte(`[3]`)))
	fresh, err := store.Read(ctx, "medicare.users")
	require.NoError(t, err)
	assert.Equal(t, `[3]`, string(fresh))
}

// pausingStore holds its first Read after fetching the payload until
// resume is closed
type pausingStore struct {
	repositories.RecordStore
	paused  bool
	fetched chan struct{}
	resume  chan struct{}
}

func (s *pausingStore) Read(ctx context.Context, key string) ([]byte, error) {
	payload, err := s.RecordStore.Read(ctx, key)
	if !s.paused {
		s.paused = true
		close(s.fetched)
		<-s.resume
	}
	return payload, err
}

func TestCachedStore_ReadOverlappingWriteIsNotCached(t *testing.T) {
	ctx := context.Background()
	client, _ := newMiniredisClient(t)

	// Arrange
	inner := NewMemoryStore()
	require.NoError(t, inner.Write(ctx, "medicare.users", []byte(`[{"id":1}]`)))
	slow := &pausingStore{RecordStore: inner, fetched: make(chan struct{}), resume: make(chan struct{})}
	store := NewCachedStore(slow, cache.NewRedisAdapter(client, "slotcache:"), time.Minute, nil)

	// Act
	done := make(chan []byte)
	go func() {
		payload, _ := store.Read(ctx, "medicare.users")
		done <- payload
	}()
	<-slow.fetched
	require.NoError(t, store.Write(ctx, "medicare.users", []byte(`[{"id":1},{"id":2}]`)))
	close(slow.resume)
	assert.Equal(t, `[{"id":1}]`, string(<-done))

	// Assert
	payload, err := store.Read(ctx, "medicare.users")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1},{"id":2}]`, string(payload))
}

func TestInstrumentedStore_Delegates(t *testing.T) {
	ctx := context.Background()
	store := NewInstrumentedStore(NewMemoryStore(), "memory", nil)

	require.NoError(t, store.Write(ctx, "medicare.users", []byte(`[]`)))
	payload, err := store.Read(ctx, "medicare.users")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(payload))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"medicare.users"}, keys)
}
