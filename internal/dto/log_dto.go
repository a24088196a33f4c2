package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type LogBuildRequest struct {
	// Timestamp is stored as sent; callers use both epoch numbers and strings.
	Timestamp json.RawMessage `json:"timestamp,omitempty"`
	Source    string          `json:"source"`
	LogText   string          `json:"log_text" validate:"required"`
}

type LogBuildResponse struct {
	Success bool      `json:"success"`
	Id      uuid.UUID `json:"id"`
}

type LogRecordResponse struct {
	Id              uuid.UUID `json:"id"`
	Seq             int64     `json:"seq"`
	Kind            string    `json:"kind"`
	Timestamp       time.Time `json:"timestamp"`
	RequestSummary  string    `json:"request_summary"`
	ResponseSummary string    `json:"response_summary"`
}
