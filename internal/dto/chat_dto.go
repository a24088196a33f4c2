package dto

import (
	"bytes"
	"encoding/json"
)

type ChatMessageDTO struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content"`
}

type ChatRequest struct {
	// RawMessages is kept raw so a non-array value can be told apart from a decode error.
	RawMessages json.RawMessage `json:"messages"`
	SessionId   string          `json:"session_id" validate:"max=256"`
	Stream      *bool           `json:"stream,omitempty"`

	Messages []ChatMessageDTO `json:"-" validate:"dive"`
}

// DecodeMessages fills Messages. It reports false when messages is absent or
// not a JSON array of objects.
func (r *ChatRequest) DecodeMessages() bool {
	raw := bytes.TrimSpace(r.RawMessages)
	if len(raw) == 0 || raw[0] != '[' {
		return false
	}
	var messages []ChatMessageDTO
	if err := json.Unmarshal(raw, &messages); err != nil {
		return false
	}
	r.Messages = messages
	return true
}

type ChatResponse struct {
	Reply     string `json:"reply"`
	SessionId string `json:"session_id"`
}

type SessionMemoryResponse struct {
	SessionId string           `json:"session_id"`
	Messages  []ChatMessageDTO `json:"messages"`
}
