package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type Embedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Namespace      string          `gorm:"type:varchar(128);not null;index"`
	Content        string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector"` // dimension depends on the configured model
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (Embedding) TableName() string {
	return "embeddings"
}
