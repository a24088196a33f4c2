package entity

import (
	"time"

	"github.com/google/uuid"
)

type Embedding struct {
	Id        uuid.UUID
	Namespace string
	Content   string
	Vector    []float32
	CreatedAt time.Time
}
