package implementation

import (
	"context"
	"errors"
	"time"

	"ai-gateway-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

type RedisKeyValueStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisKeyValueStore stores values without expiry when ttl is zero.
func NewRedisKeyValueStore(rdb *redis.Client, ttl time.Duration) contract.KeyValueStore {
	return &RedisKeyValueStore{rdb: rdb, ttl: ttl}
}

func (s *RedisKeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (s *RedisKeyValueStore) Put(ctx context.Context, key, value string) error {
	return s.rdb.Set(ctx, key, value, s.ttl).Err()
}

func (s *RedisKeyValueStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
