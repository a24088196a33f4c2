package contract

import (
	"context"

	"ai-gateway-be/internal/entity"
	"ai-gateway-be/internal/repository/specification"
)

type EmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.Embedding) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
