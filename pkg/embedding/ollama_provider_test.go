package embedding

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaProvider_Generate(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "embedding field", body: `{"embedding":[3,4]}`},
		{name: "embeddings field", body: `{"embeddings":[[3,4],[1,1]]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/embeddings", r.URL.Path)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewOllamaProvider(srv.URL, "nomic-embed-text", 0)
			vec, err := p.Generate(context.Background(), "hello")
			require.NoError(t, err)
			require.Len(t, vec, 2)
			assert.InDelta(t, 0.6, vec[0], 1e-6)
			assert.InDelta(t, 0.8, vec[1], 1e-6)
		})
	}
}

func TestOllamaProvider_GenerateEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "", 0)
	_, err := p.Generate(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrEmptyEmbedding)
}

func TestNormalizeVector(t *testing.T) {
	out := normalizeVector([]float32{1, 2, 2})
	var mag float64
	for _, v := range out {
		mag += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(mag), 1e-6)

	zero := []float32{0, 0}
	assert.Equal(t, zero, normalizeVector(zero))
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(Settings{ProviderType: "ollama"})
	require.NoError(t, err)
	assert.IsType(t, &OllamaProvider{}, p)

	_, err = NewProvider(Settings{ProviderType: "jina"})
	assert.Error(t, err)

	_, err = NewProvider(Settings{ProviderType: "gemini"})
	assert.Error(t, err)
}
