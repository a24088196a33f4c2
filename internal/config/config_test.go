package config

import (
	"testing"
	"time"

	"ai-gateway-be/internal/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SYSTEM_PROMPT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, constant.DefaultSystemPrompt, cfg.Gateway.SystemPrompt)
	assert.Equal(t, constant.DefaultMemoryWindow, cfg.Gateway.MemoryWindow)
	assert.Equal(t, constant.DefaultListLimit, cfg.Gateway.ListLimit)
	assert.Equal(t, "openai", cfg.Ai.ImageProvider)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("KV_BACKEND", "memory")
	t.Setenv("KV_TTL", "90s")
	t.Setenv("CHAT_STREAM_DEFAULT", "true")
	t.Setenv("MEMORY_WINDOW", "0")
	t.Setenv("SYSTEM_PROMPT", "be terse")
	t.Setenv("GO_ENV", "production")
	t.Setenv("CHAT_TEMPERATURE", "0")
	t.Setenv("IMAGE_PROVIDER", "openrouter")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.App.KVBackend)
	assert.Equal(t, 90*time.Second, cfg.App.KVTTL)
	assert.True(t, cfg.Gateway.StreamByDefault)
	assert.Equal(t, constant.DefaultMemoryWindow, cfg.Gateway.MemoryWindow)
	assert.Equal(t, "be terse", cfg.Gateway.SystemPrompt)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 0.0, cfg.Gateway.Temperature)
	assert.Equal(t, "openrouter", cfg.Ai.ImageProvider)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("CHAT_TEMPERATURE", "warm")

	_, err := Load()
	assert.Error(t, err)
}

func TestDefaultGatewayConfig(t *testing.T) {
	g := DefaultGatewayConfig()

	assert.Equal(t, "1024x1024", g.DefaultImageSize)
	assert.Equal(t, 10, g.MemoryWindow)
	assert.NotEmpty(t, g.SystemPrompt)
	assert.False(t, g.StreamByDefault)
}
