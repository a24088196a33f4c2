package entity

import (
	"time"

	"github.com/google/uuid"
)

type ImageArtifact struct {
	Id        uuid.UUID
	CreatedAt time.Time
	Prompt    string
	Size      string
	Model     string
	Source    string
	SourceURL string
	SessionId string
	HasBytes  bool

	// EncodedBytes lives in the KV store, never in the metadata row.
	EncodedBytes string
}
