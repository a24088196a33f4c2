package factory

import (
	"testing"

	"ai-gateway-be/pkg/llm/ollama"
	"ai-gateway-be/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider(Settings{ProviderType: "ollama", ModelName: "llama3"})
	require.NoError(t, err)
	assert.IsType(t, &ollama.OllamaProvider{}, p)

	p, err = NewLLMProvider(Settings{ProviderType: "openai", BaseURL: "https://example.test/v1"})
	require.NoError(t, err)
	assert.IsType(t, &openai.Provider{}, p)

	_, err = NewLLMProvider(Settings{ProviderType: "openai"})
	assert.Error(t, err)

	_, err = NewLLMProvider(Settings{ProviderType: "unknown"})
	assert.Error(t, err)
}
