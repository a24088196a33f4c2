package contract

import (
	"context"

	"ai-gateway-be/internal/entity"
	"ai-gateway-be/internal/repository/specification"
)

type ImageArtifactRepository interface {
	Create(ctx context.Context, artifact *entity.ImageArtifact) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ImageArtifact, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ImageArtifact, error)
}
