package embedding

import (
	"context"
	"errors"
)

// ErrEmptyEmbedding is returned when the upstream answered without a vector.
var ErrEmptyEmbedding = errors.New("embedding response carried no vector")

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}
