package service

import (
	"context"
	"testing"

	"ai-gateway-be/internal/config"
	"ai-gateway-be/internal/pkg/logger"
	"ai-gateway-be/pkg/normalizer"
	"ai-gateway-be/testutil"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const testLogTopic = "request_logs_test"

type harness struct {
	cfg      config.GatewayConfig
	kv       *testutil.FlakyKV
	repos    *testutil.FakeRepositoryFactory
	provider *testutil.FakeProvider
	embedder *testutil.FakeEmbedder
	sink     *testutil.RecordingSink
	logger   logger.ILogger
	logs     *observer.ObservedLogs

	memory    ISessionMemory
	reqLogger IRequestLogger
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	log, logs := testutil.NewObservedLogger()
	h := &harness{
		cfg:      config.DefaultGatewayConfig(),
		kv:       testutil.NewFlakyKV(),
		repos:    testutil.NewFakeRepositoryFactory(),
		provider: &testutil.FakeProvider{Reply: "hi from the model"},
		embedder: &testutil.FakeEmbedder{Vector: []float32{0.1, 0.2, 0.3}},
		sink:     &testutil.RecordingSink{},
		logger:   log,
		logs:     logs,
	}

	bus := testutil.NewSyncBus(t)
	consumer := NewLogConsumer(bus, testLogTopic, h.repos, log, h.sink)
	require.NoError(t, consumer.Consume(context.Background()))

	h.reqLogger = NewRequestLogger(bus, testLogTopic, log)
	h.memory = NewSessionMemory(h.kv, h.cfg.MemoryWindow, log)
	return h
}

func (h *harness) chat() IChatService {
	return NewChatService(h.provider, h.memory, h.reqLogger, h.cfg, h.logger)
}

func (h *harness) images(fetcher normalizer.Fetcher) IImageService {
	return NewImageService(h.provider, normalizer.NewImageNormalizer(fetcher), h.kv, h.repos, h.reqLogger, h.cfg, h.logger)
}

func (h *harness) files() IFileService {
	return NewFileService(h.kv, h.repos, h.reqLogger, h.logger)
}

// warnings returns diagnostics at warn level or above.
func (h *harness) warnings() []observer.LoggedEntry {
	var out []observer.LoggedEntry
	for _, e := range h.logs.All() {
		if e.Level >= zapcore.WarnLevel {
			out = append(out, e)
		}
	}
	return out
}
