package service

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-gateway-be/internal/constant"
	"ai-gateway-be/internal/entity"
	"ai-gateway-be/internal/pkg/logger"
	"ai-gateway-be/internal/repository/contract"
)

// ISessionMemory keeps the most recent turns of each session in the KV store.
type ISessionMemory interface {
	Load(ctx context.Context, sessionKey string) ([]entity.ChatMessage, error)
	// Append overwrites the stored window with the last N non-system
	// messages of conversation. Concurrent writers race; the last put wins.
	Append(ctx context.Context, sessionKey string, conversation []entity.ChatMessage) error
}

type sessionMemory struct {
	kv     contract.KeyValueStore
	window int
	logger logger.ILogger
}

func NewSessionMemory(kv contract.KeyValueStore, window int, logger logger.ILogger) ISessionMemory {
	if window <= 0 {
		window = constant.DefaultMemoryWindow
	}
	return &sessionMemory{
		kv:     kv,
		window: window,
		logger: logger,
	}
}

func (m *sessionMemory) Load(ctx context.Context, sessionKey string) ([]entity.ChatMessage, error) {
	raw, found, err := m.kv.Get(ctx, constant.MemoryKey(sessionKey))
	if err != nil {
		return nil, fmt.Errorf("load session memory: %w", err)
	}
	if !found || raw == "" {
		return []entity.ChatMessage{}, nil
	}

	var messages []entity.ChatMessage
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		m.logger.Warn("SessionMemory", "Discarding malformed memory window", map[string]interface{}{
			"session": sessionKey,
			"error":   err.Error(),
		})
		return []entity.ChatMessage{}, nil
	}
	return messages, nil
}

func (m *sessionMemory) Append(ctx context.Context, sessionKey string, conversation []entity.ChatMessage) error {
	window := lastN(withoutSystem(conversation), m.window)

	blob, err := json.Marshal(window)
	if err != nil {
		return fmt.Errorf("encode session memory: %w", err)
	}
	if err := m.kv.Put(ctx, constant.MemoryKey(sessionKey), string(blob)); err != nil {
		return fmt.Errorf("store session memory: %w", err)
	}
	return nil
}

func withoutSystem(messages []entity.ChatMessage) []entity.ChatMessage {
	out := make([]entity.ChatMessage, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == constant.ChatMessageRoleSystem {
			continue
		}
		out = append(out, msg)
	}
	return out
}

func lastN(messages []entity.ChatMessage, n int) []entity.ChatMessage {
	if len(messages) <= n {
		return messages
	}
	return messages[len(messages)-n:]
}
