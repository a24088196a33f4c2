package dto

import "github.com/google/uuid"

type CreateEmbeddingRequest struct {
	Text      string `json:"text" validate:"required"`
	Namespace string `json:"namespace" validate:"max=128"`
}

type CreateEmbeddingResponse struct {
	Id        uuid.UUID `json:"id"`
	Namespace string    `json:"namespace"`
}
