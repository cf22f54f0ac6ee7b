package storage

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/Saranya396/projectt/internal/domain/repositories"
	redisclient "github.com/Saranya396/projectt/internal/infrastructure/clients/redis"
	apperrors "github.com/Saranya396/projectt/pkg/errors"
)

// RedisStore keeps each slot in its own Redis string key
type RedisStore struct {
	client    *redisclient.Client
	keyPrefix string
}

// NewRedisStore creates a Redis backed record store
func NewRedisStore(client *redisclient.Client, keyPrefix string) *RedisStore {
	return &RedisStore{client: client, keyPrefix: keyPrefix}
}

var _ repositories.RecordStore = (*RedisStore)(nil)

// Read fetches the slot payload
func (s *RedisStore) Read(ctx context.Context, key string) ([]byte, error) {
	payload, err := s.client.Client().Get(ctx, s.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read slot "+key, err)
	}
	return payload, nil
}

// Write stores the slot payload without expiry
func (s *RedisStore) Write(ctx context.Context, key string, payload []byte) error {
	if err := s.client.Client().Set(ctx, s.keyPrefix+key, payload, 0).Err(); err != nil {
		return apperrors.NewInternalError("failed to write slot "+key, err)
	}
	return nil
}

// Keys scans for slot keys under the configured prefix
func (s *RedisStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.client.Client().Scan(ctx, 0, s.keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), s.keyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to list slots", err)
	}
	sort.Strings(keys)
	return keys, nil
}
