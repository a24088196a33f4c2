package entity

import (
	"time"

	"github.com/google/uuid"
)

type LogKind string

const (
	LogKindChat      LogKind = "chat"
	LogKindImage     LogKind = "image"
	LogKindEmbedding LogKind = "embedding"
	LogKindBuild     LogKind = "build"
	LogKindFileEdit  LogKind = "file-edit"
)

func (k LogKind) Valid() bool {
	switch k {
	case LogKindChat, LogKindImage, LogKindEmbedding, LogKindBuild, LogKindFileEdit:
		return true
	}
	return false
}

// LogRecord is write-once. Summaries are opaque JSON text.
type LogRecord struct {
	Id              uuid.UUID `json:"id"`
	Seq             int64     `json:"seq"`
	Kind            LogKind   `json:"kind"`
	Timestamp       time.Time `json:"timestamp"`
	RequestSummary  string    `json:"request_summary"`
	ResponseSummary string    `json:"response_summary"`
}
