package dto

import (
	"bytes"
	"encoding/json"
	"time"
)

type WriteFileRequest struct {
	Path      string          `json:"path" validate:"required,max=1024"`
	Content   json.RawMessage `json:"content"`
	Editor    string          `json:"editor"`
	SessionId string          `json:"session_id" validate:"max=256"`
}

// ContentString reports false unless content is a JSON string. The empty
// string is valid content.
func (r *WriteFileRequest) ContentString() (string, bool) {
	raw := bytes.TrimSpace(r.Content)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

type WriteFileResponse struct {
	Success bool   `json:"success"`
	Path    string `json:"path"`
}

type ProjectFileResponse struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type FileTreeNode struct {
	Name      string          `json:"name"`
	Path      string          `json:"path"`
	Type      string          `json:"type"`
	UpdatedAt time.Time       `json:"updated_at"`
	Children  []*FileTreeNode `json:"children,omitempty"`
}

type FileTreeResponse struct {
	Root []*FileTreeNode `json:"root"`
}
