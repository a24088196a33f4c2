package bootstrap

import (
	"context"
	"fmt"
	"time"

	"ai-gateway-be/internal/config"
	"ai-gateway-be/internal/controller"
	"ai-gateway-be/internal/pkg/logger"
	"ai-gateway-be/internal/pkg/serverutils"
	"ai-gateway-be/internal/repository/contract"
	"ai-gateway-be/internal/repository/implementation"
	"ai-gateway-be/internal/repository/memory"
	"ai-gateway-be/internal/repository/unitofwork"
	"ai-gateway-be/internal/service"
	"ai-gateway-be/internal/websocket"
	"ai-gateway-be/pkg/embedding"
	"ai-gateway-be/pkg/events"
	"ai-gateway-be/pkg/llm/factory"
	pktNats "ai-gateway-be/pkg/nats"
	"ai-gateway-be/pkg/normalizer"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	ChatController      controller.IChatController
	ImageController     controller.IImageController
	EmbeddingController controller.IEmbeddingController
	LogController       controller.ILogController
	FileController      controller.IFileController
	HealthController    controller.IHealthController
	LiveLogController   controller.ILiveLogController

	// Background Services (Exposed for main.go to run)
	LogConsumer  service.ILogConsumer
	WebSocketHub *websocket.Hub

	closers []func() error
}

func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)

	// 2. Infrastructure
	var closers []func() error

	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		rdb = newRedisClient(cfg.App.RedisURL, sysLogger)
		closers = append(closers, rdb.Close)
	}

	kv, err := newKeyValueStore(cfg.App, rdb)
	if err != nil {
		return nil, err
	}
	sysLogger.Info("Bootstrap", "Key-value store ready", map[string]interface{}{"backend": cfg.App.KVBackend})

	// Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewStdLogger(false, false),
	)
	closers = append(closers, pubSub.Close)

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.LiveLogFilePath)
	wsHub := websocket.NewHub(rdb, wsLogger)

	sinks := []events.Publisher{wsHub}
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS, log events stay local", map[string]interface{}{"error": err.Error()})
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := natsPub.EnsureStream(ctx); err != nil {
				sysLogger.Warn("Bootstrap", "Failed to ensure NATS stream", map[string]interface{}{"error": err.Error()})
			}
			cancel()
			sinks = append(sinks, natsPub)
			closers = append(closers, func() error { natsPub.Close(); return nil })
		}
	}

	// 3. Providers
	llmProvider, err := factory.NewLLMProvider(factory.Settings{
		ProviderType: cfg.Ai.LLMProvider,
		ModelName:    cfg.Gateway.ChatModel,
		BaseURL:      providerBaseURL(cfg.Ai, cfg.Ai.LLMProvider),
		APIKey:       cfg.Keys.OpenAI,
		Timeout:      cfg.Ai.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init LLM provider: %w", err)
	}
	sysLogger.Info("Bootstrap", "Using LLM provider", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Gateway.ChatModel,
	})

	// Images default to an OpenAI-compatible upstream since Ollama has no
	// image endpoint.
	imageProvider, err := factory.NewLLMProvider(factory.Settings{
		ProviderType: cfg.Ai.ImageProvider,
		ModelName:    cfg.Gateway.ImageModel,
		BaseURL:      providerBaseURL(cfg.Ai, cfg.Ai.ImageProvider),
		APIKey:       cfg.Keys.OpenAI,
		Timeout:      cfg.Ai.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init image provider: %w", err)
	}

	embeddingProvider, err := embedding.NewProvider(embedding.Settings{
		ProviderType: cfg.Ai.EmbeddingProvider,
		BaseURL:      cfg.Ai.OllamaBaseURL,
		Model:        cfg.Ai.EmbeddingModel,
		APIKey:       cfg.Keys.Jina,
		Timeout:      cfg.Ai.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init embedding provider: %w", err)
	}

	imageNormalizer := normalizer.NewImageNormalizer(
		normalizer.NewHTTPFetcher(cfg.Gateway.ImageFetchTimeout, 0),
	)

	// 4. Services
	reqLogger := service.NewRequestLogger(pubSub, cfg.App.LogTopic, sysLogger)
	logConsumer := service.NewLogConsumer(pubSub, cfg.App.LogTopic, uowFactory, sysLogger, sinks...)
	sessionMemory := service.NewSessionMemory(kv, cfg.Gateway.MemoryWindow, sysLogger)

	chatService := service.NewChatService(llmProvider, sessionMemory, reqLogger, cfg.Gateway, sysLogger)
	imageService := service.NewImageService(imageProvider, imageNormalizer, kv, uowFactory, reqLogger, cfg.Gateway, sysLogger)
	embeddingService := service.NewEmbeddingService(embeddingProvider, uowFactory, reqLogger)
	logService := service.NewLogService(uowFactory, cfg.Gateway, sysLogger, sinks...)
	fileService := service.NewFileService(kv, uowFactory, reqLogger, sysLogger)
	healthService := service.NewHealthService(uowFactory, kv)

	// 5. Controllers
	return &Container{
		Logger:              sysLogger,
		ChatController:      controller.NewChatController(chatService),
		ImageController:     controller.NewImageController(imageService),
		EmbeddingController: controller.NewEmbeddingController(embeddingService),
		LogController:       controller.NewLogController(logService),
		FileController:      controller.NewFileController(fileService),
		HealthController:    controller.NewHealthController(healthService),
		LiveLogController:   controller.NewLiveLogController(wsHub, wsLogger),

		LogConsumer:  logConsumer,
		WebSocketHub: wsHub,
		closers:      closers,
	}, nil
}

// Controllers lists everything that registers routes under /api.
func (c *Container) Controllers() []serverutils.RouteRegistrar {
	return []serverutils.RouteRegistrar{
		c.ChatController,
		c.ImageController,
		c.EmbeddingController,
		c.LogController,
		c.FileController,
		c.HealthController,
		c.LiveLogController,
	}
}

// Start runs the background workers until ctx is cancelled.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)

	if err := c.LogConsumer.Consume(ctx); err != nil {
		return fmt.Errorf("start log consumer: %w", err)
	}
	return nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			c.Logger.Warn("Bootstrap", "Failed to close resource", map[string]interface{}{"error": err.Error()})
		}
	}
}

func newRedisClient(url string, log logger.ILogger) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("Bootstrap", "Failed to parse Redis URL, using it as an address", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Bootstrap", "Failed to connect to Redis", map[string]interface{}{"error": err.Error()})
	}
	return rdb
}

func newKeyValueStore(cfg config.AppConfig, rdb *redis.Client) (contract.KeyValueStore, error) {
	switch cfg.KVBackend {
	case "memory":
		return memory.NewKeyValueStore(cfg.KVTTL), nil
	case "", "redis":
		if rdb == nil {
			return nil, fmt.Errorf("KV_BACKEND=redis requires REDIS_URL")
		}
		return implementation.NewRedisKeyValueStore(rdb, cfg.KVTTL), nil
	default:
		return nil, fmt.Errorf("unsupported KV backend: %s", cfg.KVBackend)
	}
}

func providerBaseURL(cfg config.AIConfig, providerType string) string {
	if providerType == "ollama" {
		return cfg.OllamaBaseURL
	}
	return cfg.OpenAIBaseURL
}
