package config

import (
	"fmt"
	"log"
	"time"

	"ai-gateway-be/internal/constant"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Gateway  GatewayConfig
}

type AppConfig struct {
	Port               string        `env:"APP_PORT" envDefault:"3000"`
	BaseURL            string        `env:"APP_BASE_URL" envDefault:"http://localhost:3000"`
	Environment        string        `env:"GO_ENV" envDefault:"development"`
	LogFilePath        string        `env:"LOG_FILE_PATH" envDefault:"logs/app.log"`
	LiveLogFilePath    string        `env:"LIVE_LOG_FILE_PATH" envDefault:"logs/live.log"`
	CorsAllowedOrigins string        `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
	StaticDir          string        `env:"STATIC_DIR" envDefault:"./public"`
	BodyLimitMB        int           `env:"BODY_LIMIT_MB" envDefault:"10"`
	NatsURL            string        `env:"NATS_URL"`
	RedisURL           string        `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	KVBackend          string        `env:"KV_BACKEND" envDefault:"redis"` // "redis" | "memory"
	KVTTL              time.Duration `env:"KV_TTL" envDefault:"0s"`
	LogTopic           string        `env:"LOG_TOPIC" envDefault:"REQUEST_LOG"`
}

type DatabaseConfig struct {
	Connection string `env:"DB_CONNECTION_STRING"`
}

type APIKeys struct {
	OpenAI string `env:"OPENAI_API_KEY"`
	Jina   string `env:"JINA_API_KEY"`
}

type AIConfig struct {
	LLMProvider       string        `env:"LLM_PROVIDER" envDefault:"ollama"` // "ollama" | "openai"
	ImageProvider     string        `env:"IMAGE_PROVIDER" envDefault:"openai"`
	OllamaBaseURL     string        `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OpenAIBaseURL     string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	EmbeddingProvider string        `env:"EMBEDDING_PROVIDER" envDefault:"ollama"` // "ollama" | "jina"
	EmbeddingModel    string        `env:"EMBEDDING_MODEL" envDefault:"nomic-embed-text"`
	RequestTimeout    time.Duration `env:"LLM_REQUEST_TIMEOUT" envDefault:"120s"`
}

// GatewayConfig is the immutable orchestration configuration handed to the
// services at construction time.
type GatewayConfig struct {
	ChatModel         string        `env:"CHAT_MODEL" envDefault:"llama3"`
	ImageModel        string        `env:"IMAGE_MODEL" envDefault:"dall-e-3"`
	SystemPrompt      string        `env:"SYSTEM_PROMPT"`
	MemoryWindow      int           `env:"MEMORY_WINDOW" envDefault:"10"`
	MaxTokens         int           `env:"CHAT_MAX_TOKENS" envDefault:"1024"`
	Temperature       float64       `env:"CHAT_TEMPERATURE" envDefault:"0.7"`
	DefaultImageSize  string        `env:"IMAGE_DEFAULT_SIZE" envDefault:"1024x1024"`
	StreamByDefault   bool          `env:"CHAT_STREAM_DEFAULT" envDefault:"false"`
	ImageFetchTimeout time.Duration `env:"IMAGE_FETCH_TIMEOUT" envDefault:"15s"`
	ListLimit         int           `env:"LIST_LIMIT" envDefault:"50"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Gateway = cfg.Gateway.withDefaults()
	return cfg, nil
}

// DefaultGatewayConfig returns the reference orchestration settings.
func DefaultGatewayConfig() GatewayConfig {
	return GatewayConfig{
		ChatModel:         "llama3",
		ImageModel:        "dall-e-3",
		MemoryWindow:      constant.DefaultMemoryWindow,
		MaxTokens:         1024,
		Temperature:       0.7,
		DefaultImageSize:  "1024x1024",
		ImageFetchTimeout: 15 * time.Second,
		ListLimit:         constant.DefaultListLimit,
	}.withDefaults()
}

func (g GatewayConfig) withDefaults() GatewayConfig {
	if g.SystemPrompt == "" {
		g.SystemPrompt = constant.DefaultSystemPrompt
	}
	if g.MemoryWindow <= 0 {
		g.MemoryWindow = constant.DefaultMemoryWindow
	}
	if g.ListLimit <= 0 {
		g.ListLimit = constant.DefaultListLimit
	}
	return g
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
