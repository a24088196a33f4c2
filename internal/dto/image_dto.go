package dto

import (
	"time"

	"github.com/google/uuid"
)

type TextToImageRequest struct {
	Prompt    string `json:"prompt" validate:"required"`
	Size      string `json:"size" validate:"omitempty,max=32"`
	SessionId string `json:"session_id" validate:"max=256"`
}

type ImageMetaDTO struct {
	Model     string `json:"model"`
	Source    string `json:"source"`
	SourceURL string `json:"source_url,omitempty"`
	SessionId string `json:"session_id,omitempty"`
}

type ImageArtifactResponse struct {
	Id        uuid.UUID    `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Prompt    string       `json:"prompt"`
	Size      string       `json:"size"`
	AccessURL string       `json:"access_url"`
	HasBase64 bool         `json:"has_base64"`
	Meta      ImageMetaDTO `json:"meta"`
}

type ImageBytesResponse struct {
	Id  string `json:"id"`
	B64 string `json:"b64"`
}
