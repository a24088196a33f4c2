package factory

import (
	"fmt"
	"time"

	"ai-gateway-be/pkg/llm"
	"ai-gateway-be/pkg/llm/ollama"
	"ai-gateway-be/pkg/llm/openai"
)

type Settings struct {
	ProviderType string
	ModelName    string
	BaseURL      string
	APIKey       string
	Timeout      time.Duration
}

func NewLLMProvider(s Settings) (llm.Provider, error) {
	switch s.ProviderType {
	case "ollama":
		baseURL := s.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, s.ModelName, s.Timeout), nil
	case "openai", "openrouter":
		if s.BaseURL == "" {
			return nil, fmt.Errorf("%s provider requires a base URL", s.ProviderType)
		}
		return openai.NewProvider(s.BaseURL, s.APIKey, s.ModelName, s.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.ProviderType)
	}
}
