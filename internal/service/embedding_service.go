package service

import (
	"context"
	"fmt"
	"time"

	"ai-gateway-be/internal/constant"
	"ai-gateway-be/internal/dto"
	"ai-gateway-be/internal/entity"
	"ai-gateway-be/internal/repository/unitofwork"
	"ai-gateway-be/pkg/embedding"

	"github.com/google/uuid"
)

type IEmbeddingService interface {
	Create(ctx context.Context, req *dto.CreateEmbeddingRequest) (*dto.CreateEmbeddingResponse, error)
}

type embeddingService struct {
	provider   embedding.EmbeddingProvider
	uowFactory unitofwork.RepositoryFactory
	reqLogger  IRequestLogger
}

func NewEmbeddingService(
	provider embedding.EmbeddingProvider,
	uowFactory unitofwork.RepositoryFactory,
	reqLogger IRequestLogger,
) IEmbeddingService {
	return &embeddingService{
		provider:   provider,
		uowFactory: uowFactory,
		reqLogger:  reqLogger,
	}
}

func (s *embeddingService) Create(ctx context.Context, req *dto.CreateEmbeddingRequest) (*dto.CreateEmbeddingResponse, error) {
	namespace := req.Namespace
	if namespace == "" {
		namespace = constant.DefaultNamespace
	}

	vector, err := s.provider.Generate(ctx, req.Text)
	if err != nil {
		return nil, fmt.Errorf("generate embedding: %w", err)
	}

	row := &entity.Embedding{
		Id:        uuid.New(),
		Namespace: namespace,
		Content:   req.Text,
		Vector:    vector,
		CreatedAt: time.Now().UTC(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	storeErr := uow.EmbeddingRepository().Create(ctx, row)

	response := map[string]interface{}{
		"id":         row.Id.String(),
		"dimensions": len(vector),
		"stored":     storeErr == nil,
	}
	if storeErr != nil {
		response["error"] = "store_failed"
	}
	s.reqLogger.Record(ctx, entity.LogKindEmbedding,
		map[string]interface{}{
			"namespace":   namespace,
			"text_length": len(req.Text),
		},
		response,
	)

	if storeErr != nil {
		return nil, fmt.Errorf("store embedding: %w", storeErr)
	}

	return &dto.CreateEmbeddingResponse{
		Id:        row.Id,
		Namespace: namespace,
	}, nil
}
