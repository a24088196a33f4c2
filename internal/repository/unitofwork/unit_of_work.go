package unitofwork

import (
	"context"

	"ai-gateway-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	RequestLogRepository() contract.RequestLogRepository
	ImageArtifactRepository() contract.ImageArtifactRepository
	FileNodeRepository() contract.FileNodeRepository
	EmbeddingRepository() contract.EmbeddingRepository
}
