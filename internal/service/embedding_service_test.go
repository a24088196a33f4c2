package service

import (
	"context"
	"errors"
	"testing"

	"ai-gateway-be/internal/dto"
	"ai-gateway-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddingService_Create(t *testing.T) {
	h := newHarness(t)
	svc := NewEmbeddingService(h.embedder, h.repos, h.reqLogger)

	res, err := svc.Create(context.Background(), &dto.CreateEmbeddingRequest{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "default", res.Namespace)

	require.Len(t, h.repos.Embeddings, 1)
	assert.Equal(t, res.Id, h.repos.Embeddings[0].Id)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, h.repos.Embeddings[0].Vector)
	logs := h.repos.LogsOfKind(entity.LogKindEmbedding)
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].ResponseSummary, `"stored":true`)

	res, err = svc.Create(context.Background(), &dto.CreateEmbeddingRequest{Text: "x", Namespace: "docs"})
	require.NoError(t, err)
	assert.Equal(t, "docs", res.Namespace)
}

func TestEmbeddingService_Failures(t *testing.T) {
	t.Run("provider", func(t *testing.T) {
		h := newHarness(t)
		h.embedder.Err = errors.New("model missing")
		_, err := NewEmbeddingService(h.embedder, h.repos, h.reqLogger).Create(context.Background(), &dto.CreateEmbeddingRequest{Text: "hello"})
		assert.Error(t, err)
		assert.Equal(t, 0, h.repos.LogCount())
	})

	t.Run("insert", func(t *testing.T) {
		h := newHarness(t)
		h.repos.EmbeddingCreateErr = errors.New("dimension mismatch")
		_, err := NewEmbeddingService(h.embedder, h.repos, h.reqLogger).Create(context.Background(), &dto.CreateEmbeddingRequest{Text: "hello"})
		assert.Error(t, err)

		logs := h.repos.LogsOfKind(entity.LogKindEmbedding)
		require.Len(t, logs, 1)
		assert.Contains(t, logs[0].ResponseSummary, `"stored":false`)
		assert.Contains(t, logs[0].ResponseSummary, `"error":"store_failed"`)
	})
}
