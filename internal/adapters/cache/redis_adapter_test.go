package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saranya396/projectt/internal/domain/providers"
	redisclient "github.com/Saranya396/projectt/internal/infrastructure/clients/redis"
)

func newTestAdapter(t *testing.T) (providers.CacheProvider, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisAdapter(redisclient.NewFromClient(client), "cache:"), mr
}

func TestRedisAdapter_GetMiss(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	_, err := adapter.Get(context.Background(), "medicare.users")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)
}

func TestRedisAdapter_SetGetDelete(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "medicare.users", []byte(`[]`), time.Minute))
	assert.True(t, mr.Exists("cache:medicare.users"))
	assert.Equal(t, time.Minute, mr.TTL("cache:medicare.users"))

	got, err := adapter.Get(ctx, "medicare.users")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	require.NoError(t, adapter.Delete(ctx, "medicare.users"))
	assert.False(t, mr.Exists("cache:medicare.users"))
	_, err = adapter.Get(ctx, "medicare.users")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)
}

func TestRedisAdapter_Expiry(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "medicare.prescriptions", []byte(`[]`), time.Second))
	mr.FastForward(2 * time.Second)

	_, err := adapter.Get(ctx, "medicare.prescriptions")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)
}
