package mapper

import (
	"ai-gateway-be/internal/entity"
	"ai-gateway-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type EmbeddingMapper struct{}

func NewEmbeddingMapper() *EmbeddingMapper {
	return &EmbeddingMapper{}
}

func (m *EmbeddingMapper) ToEntity(e *model.Embedding) *entity.Embedding {
	if e == nil {
		return nil
	}
	return &entity.Embedding{
		Id:        e.Id,
		Namespace: e.Namespace,
		Content:   e.Content,
		Vector:    e.EmbeddingValue.Slice(),
		CreatedAt: e.CreatedAt,
	}
}

func (m *EmbeddingMapper) ToModel(e *entity.Embedding) *model.Embedding {
	if e == nil {
		return nil
	}
	return &model.Embedding{
		Id:             e.Id,
		Namespace:      e.Namespace,
		Content:        e.Content,
		EmbeddingValue: pgvector.NewVector(e.Vector),
		CreatedAt:      e.CreatedAt,
	}
}
