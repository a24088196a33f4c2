package testutil

import (
	"context"
	"sync"

	"ai-gateway-be/internal/repository/contract"
	"ai-gateway-be/internal/repository/memory"
)

// FlakyKV wraps the in-process store and fails on demand.
type FlakyKV struct {
	contract.KeyValueStore

	mu      sync.Mutex
	GetErr  error
	PutErr  error
	PingErr error
	Puts    []string
}

func NewFlakyKV() *FlakyKV {
	return &FlakyKV{KeyValueStore: memory.NewKeyValueStore(0)}
}

func (k *FlakyKV) Get(ctx context.Context, key string) (string, bool, error) {
	k.mu.Lock()
	err := k.GetErr
	k.mu.Unlock()
	if err != nil {
		return "", false, err
	}
	return k.KeyValueStore.Get(ctx, key)
}

func (k *FlakyKV) Put(ctx context.Context, key, value string) error {
	k.mu.Lock()
	k.Puts = append(k.Puts, key)
	err := k.PutErr
	k.mu.Unlock()
	if err != nil {
		return err
	}
	return k.KeyValueStore.Put(ctx, key, value)
}

func (k *FlakyKV) Ping(ctx context.Context) error {
	if k.PingErr != nil {
		return k.PingErr
	}
	return k.KeyValueStore.Ping(ctx)
}

func (k *FlakyKV) PutKeys() []string {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := make([]string, len(k.Puts))
	copy(out, k.Puts)
	return out
}
