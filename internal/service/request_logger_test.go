package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"ai-gateway-be/internal/entity"
	"ai-gateway-be/testutil"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPublisher struct{}

func (failingPublisher) Publish(string, ...*message.Message) error { return errors.New("bus closed") }
func (failingPublisher) Close() error                              { return nil }

func TestRequestLogger_RecordPersists(t *testing.T) {
	h := newHarness(t)

	h.reqLogger.Record(context.Background(), entity.LogKindEmbedding,
		map[string]interface{}{"namespace": "docs"},
		"plain text response",
	)

	logs := h.repos.LogsOfKind(entity.LogKindEmbedding)
	require.Len(t, logs, 1)
	assert.JSONEq(t, `{"namespace":"docs"}`, logs[0].RequestSummary)
	assert.JSONEq(t, `{"text":"plain text response"}`, logs[0].ResponseSummary)
	assert.NotZero(t, logs[0].Seq)
	assert.False(t, logs[0].Timestamp.IsZero())

	require.Equal(t, 1, h.sink.Count())
	assert.Equal(t, "log.embedding", h.sink.Events[0].EventType())
}

func TestRequestLogger_UnencodableSummary(t *testing.T) {
	h := newHarness(t)

	h.reqLogger.Record(context.Background(), entity.LogKindChat, map[string]interface{}{"bad": make(chan int)}, nil)

	assert.Equal(t, 0, h.repos.LogCount())
	assert.Equal(t, 1, h.logs.FilterMessage("Failed to encode log summaries").Len())
}

func TestRequestLogger_PublishFailure(t *testing.T) {
	log, logs := testutil.NewObservedLogger()
	rl := NewRequestLogger(failingPublisher{}, testLogTopic, log)

	assert.NotPanics(t, func() {
		rl.Record(context.Background(), entity.LogKindChat, "q", "a")
	})
	assert.Equal(t, 1, logs.FilterMessage("Failed to publish log record").Len())
}

func TestRequestLogger_CancelledRequestContext(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h.reqLogger.Record(ctx, entity.LogKindImage, "q", "a")

	assert.Len(t, h.repos.LogsOfKind(entity.LogKindImage), 1)
}

func TestLogConsumer_MalformedPayloadIsAcked(t *testing.T) {
	log, logs := testutil.NewObservedLogger()
	bus := testutil.NewSyncBus(t)
	repos := testutil.NewFakeRepositoryFactory()
	require.NoError(t, NewLogConsumer(bus, testLogTopic, repos, log).Consume(context.Background()))

	require.NoError(t, bus.Publish(testLogTopic, message.NewMessage("1", []byte("not json"))))

	assert.Equal(t, 0, repos.LogCount())
	assert.Equal(t, 1, logs.FilterMessage("Failed to decode log record").Len())
}

func TestLogConsumer_SinkFailureIsSwallowed(t *testing.T) {
	log, logs := testutil.NewObservedLogger()
	bus := testutil.NewSyncBus(t)
	repos := testutil.NewFakeRepositoryFactory()
	sink := &testutil.RecordingSink{Err: errors.New("nats unavailable")}
	require.NoError(t, NewLogConsumer(bus, testLogTopic, repos, log, sink, nil).Consume(context.Background()))

	record, err := newLogRecord(entity.LogKindBuild, "q", "a")
	require.NoError(t, err)
	payload, err := json.Marshal(record)
	require.NoError(t, err)

	require.NoError(t, bus.Publish(testLogTopic, message.NewMessage("1", payload)))

	assert.Equal(t, 1, repos.LogCount())
	assert.Equal(t, 1, sink.Count())
	assert.Equal(t, 1, logs.FilterMessage("Failed to publish log event").Len())
}
