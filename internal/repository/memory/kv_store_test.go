package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValueStore_GetMissingKey(t *testing.T) {
	store := NewKeyValueStore(0)

	value, found, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, value)
}

func TestKeyValueStore_PutOverwrites(t *testing.T) {
	store := NewKeyValueStore(0)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", "first"))
	require.NoError(t, store.Put(ctx, "k", "second"))

	value, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "second", value)
	assert.Equal(t, 1, store.Len())
}

func TestKeyValueStore_TTLExpires(t *testing.T) {
	store := NewKeyValueStore(20 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", "v"))
	time.Sleep(50 * time.Millisecond)

	_, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestKeyValueStore_CancelledContext(t *testing.T) {
	store := NewKeyValueStore(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, store.Put(ctx, "k", "v"))
	_, _, err := store.Get(ctx, "k")
	assert.Error(t, err)
}
