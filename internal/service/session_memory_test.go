package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ai-gateway-be/internal/constant"
	"ai-gateway-be/internal/entity"
	"ai-gateway-be/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func turns(n int) []entity.ChatMessage {
	out := make([]entity.ChatMessage, n)
	for i := range out {
		role := constant.ChatMessageRoleUser
		if i%2 == 1 {
			role = constant.ChatMessageRoleAssistant
		}
		out[i] = entity.ChatMessage{Role: role, Content: fmt.Sprintf("m%d", i)}
	}
	return out
}

func TestSessionMemory_LoadMissingKey(t *testing.T) {
	log, _ := testutil.NewObservedLogger()
	mem := NewSessionMemory(testutil.NewFlakyKV(), 10, log)

	got, err := mem.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSessionMemory_AppendKeepsLastN(t *testing.T) {
	log, _ := testutil.NewObservedLogger()
	mem := NewSessionMemory(testutil.NewFlakyKV(), 4, log)
	ctx := context.Background()

	conversation := append([]entity.ChatMessage{{Role: "system", Content: "sys"}}, turns(7)...)
	require.NoError(t, mem.Append(ctx, "s1", conversation))

	got, err := mem.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, turns(7)[3:], got)
	for _, m := range got {
		assert.NotEqual(t, "system", m.Role)
	}
}

func TestSessionMemory_LastWriterWins(t *testing.T) {
	log, _ := testutil.NewObservedLogger()
	mem := NewSessionMemory(testutil.NewFlakyKV(), 10, log)
	ctx := context.Background()

	first := []entity.ChatMessage{{Role: "user", Content: "first"}}
	second := []entity.ChatMessage{{Role: "user", Content: "second"}}

	require.NoError(t, mem.Append(ctx, "s1", first))
	require.NoError(t, mem.Append(ctx, "s1", second))

	got, err := mem.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestSessionMemory_MalformedBlob(t *testing.T) {
	log, logs := testutil.NewObservedLogger()
	kv := testutil.NewFlakyKV()
	require.NoError(t, kv.Put(context.Background(), constant.MemoryKey("s1"), "{not json"))
	mem := NewSessionMemory(kv, 10, log)

	got, err := mem.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 1, logs.FilterMessage("Discarding malformed memory window").Len())
}

func TestSessionMemory_StoreErrors(t *testing.T) {
	log, _ := testutil.NewObservedLogger()
	kv := testutil.NewFlakyKV()
	kv.GetErr = errors.New("kv down")
	kv.PutErr = errors.New("kv down")
	mem := NewSessionMemory(kv, 10, log)

	_, err := mem.Load(context.Background(), "s1")
	assert.Error(t, err)
	assert.Error(t, mem.Append(context.Background(), "s1", turns(1)))
}
