package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ai-gateway-be/internal/pkg/logger"
	"ai-gateway-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(nil, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-h.done
	})
	return h
}

func connect(t *testing.T, h *Hub, buffer int) *Client {
	t.Helper()
	c := &Client{ID: "c", Hub: h, Send: make(chan []byte, buffer)}
	want := h.ClientCount() + 1
	require.True(t, h.join(c))
	require.Eventually(t, func() bool { return h.ClientCount() == want }, time.Second, 5*time.Millisecond)
	return c
}

func TestHub_PublishDeliversFrame(t *testing.T) {
	h := startHub(t)
	c := connect(t, h, 4)

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	err := h.Publish(context.Background(), events.NewLogRecorded("id-1", 7, "chat", at, `{"a":1}`, `{"b":2}`))
	require.NoError(t, err)

	var got frame
	require.NoError(t, json.Unmarshal(<-c.Send, &got))
	assert.Equal(t, "log.chat", got.Type)
	assert.Equal(t, "id-1", got.Data["id"])
	assert.Equal(t, "chat", got.Data["kind"])
}

func TestHub_SlowClientIsDisconnected(t *testing.T) {
	h := startHub(t)
	fast := connect(t, h, 4)
	slow := connect(t, h, 0)

	require.NoError(t, h.Publish(context.Background(), events.BaseEvent{Type: "log.build"}))

	assert.Equal(t, 1, h.ClientCount())
	_, open := <-slow.Send
	assert.False(t, open)
	assert.NotEmpty(t, <-fast.Send)
}

func TestHub_LeaveClosesSend(t *testing.T) {
	h := startHub(t)
	c := connect(t, h, 1)

	h.leave(c)

	require.Eventually(t, func() bool { return h.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-c.Send
	assert.False(t, open)
}

func TestHub_HandleRemoteSkipsOwnFrames(t *testing.T) {
	h := startHub(t)
	c := connect(t, h, 4)

	own, _ := json.Marshal(clusterPayload{Origin: h.origin, Message: json.RawMessage(`{"type":"log.chat"}`)})
	other, _ := json.Marshal(clusterPayload{Origin: "elsewhere", Message: json.RawMessage(`{"type":"log.image"}`)})

	h.handleRemote(own)
	h.handleRemote([]byte("not json"))
	h.handleRemote(other)

	require.Len(t, c.Send, 1)
	assert.JSONEq(t, `{"type":"log.image"}`, string(<-c.Send))
}

func TestHub_JoinAfterShutdown(t *testing.T) {
	h := NewHub(nil, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h.Run(ctx)

	assert.False(t, h.join(&Client{Send: make(chan []byte)}))
}
