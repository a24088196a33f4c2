package contract

import (
	"context"

	"ai-gateway-be/internal/entity"
	"ai-gateway-be/internal/repository/specification"
)

type FileNodeRepository interface {
	// Create is a no-op when a node with the same path already exists.
	Create(ctx context.Context, node *entity.FileNode) error
	Update(ctx context.Context, node *entity.FileNode) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FileNode, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FileNode, error)
}
