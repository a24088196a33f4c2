package bootstrap

import (
	"testing"

	"ai-gateway-be/internal/config"
	"ai-gateway-be/pkg/llm/factory"
	"ai-gateway-be/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderBaseURL(t *testing.T) {
	cfg := config.AIConfig{
		LLMProvider:   "ollama",
		ImageProvider: "openai",
		OllamaBaseURL: "http://ollama:11434",
		OpenAIBaseURL: "https://api.example.com/v1",
	}

	assert.Equal(t, "http://ollama:11434", providerBaseURL(cfg, cfg.LLMProvider))
	assert.Equal(t, "https://api.example.com/v1", providerBaseURL(cfg, cfg.ImageProvider))
	assert.Equal(t, "https://api.example.com/v1", providerBaseURL(cfg, "openrouter"))
}

func TestImageProviderIndependentOfChatProvider(t *testing.T) {
	cfg := config.AIConfig{
		LLMProvider:   "ollama",
		ImageProvider: "openai",
		OllamaBaseURL: "http://ollama:11434",
		OpenAIBaseURL: "https://api.example.com/v1",
	}

	p, err := factory.NewLLMProvider(factory.Settings{
		ProviderType: cfg.ImageProvider,
		ModelName:    "dall-e-3",
		BaseURL:      providerBaseURL(cfg, cfg.ImageProvider),
	})
	require.NoError(t, err)
	assert.IsType(t, &openai.Provider{}, p)
}
