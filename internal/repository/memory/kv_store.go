package memory

import (
	"context"
	"time"

	"ai-gateway-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// KeyValueStore is an in-process KV backend used when Redis is not
// configured, and by tests.
type KeyValueStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewKeyValueStore keeps entries forever when ttl is zero.
func NewKeyValueStore(ttl time.Duration) *KeyValueStore {
	expiration := cache.NoExpiration
	if ttl > 0 {
		expiration = ttl
	}
	// Purge expired items every 10 minutes
	c := cache.New(expiration, 10*time.Minute)
	return &KeyValueStore{
		cache: c,
		ttl:   expiration,
	}
}

var _ contract.KeyValueStore = (*KeyValueStore)(nil)

func (s *KeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if x, found := s.cache.Get(key); found {
		return x.(string), true, nil
	}
	return "", false, nil
}

func (s *KeyValueStore) Put(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.cache.Set(key, value, cache.DefaultExpiration)
	return nil
}

func (s *KeyValueStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *KeyValueStore) Len() int {
	return s.cache.ItemCount()
}
