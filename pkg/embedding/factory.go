package embedding

import (
	"fmt"
	"time"

	"ai-gateway-be/pkg/embedding/jina"
)

type Settings struct {
	ProviderType string
	BaseURL      string
	Model        string
	APIKey       string
	Timeout      time.Duration
}

func NewProvider(s Settings) (EmbeddingProvider, error) {
	switch s.ProviderType {
	case "", "ollama":
		return NewOllamaProvider(s.BaseURL, s.Model, s.Timeout), nil
	case "jina":
		if s.APIKey == "" {
			return nil, fmt.Errorf("jina embedding provider requires an API key")
		}
		return jina.NewJinaProvider(s.APIKey, s.Model, s.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", s.ProviderType)
	}
}
