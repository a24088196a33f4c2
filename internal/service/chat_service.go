package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"ai-gateway-be/internal/config"
	"ai-gateway-be/internal/constant"
	"ai-gateway-be/internal/dto"
	"ai-gateway-be/internal/entity"
	"ai-gateway-be/internal/pkg/logger"
	"ai-gateway-be/pkg/llm"
	"ai-gateway-be/pkg/streaming"
)

type IChatService interface {
	ShouldStream(req *dto.ChatRequest) bool
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	// ChatStream opens the upstream stream. The caller must Drain the result.
	ChatStream(ctx context.Context, req *dto.ChatRequest) (*ChatStream, error)
	SessionMemory(ctx context.Context, sessionId string) (*dto.SessionMemoryResponse, error)
}

type chatService struct {
	llm       llm.LLMProvider
	memory    ISessionMemory
	reqLogger IRequestLogger
	cfg       config.GatewayConfig
	logger    logger.ILogger
	now       func() time.Time
}

func NewChatService(
	provider llm.LLMProvider,
	memory ISessionMemory,
	reqLogger IRequestLogger,
	cfg config.GatewayConfig,
	logger logger.ILogger,
) IChatService {
	return &chatService{
		llm:       provider,
		memory:    memory,
		reqLogger: reqLogger,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// chatTurn carries one call from prompt assembly to memory update.
type chatTurn struct {
	sessionKey string
	caller     []entity.ChatMessage
	history    []entity.ChatMessage
	prompt     []llm.Message
	streamed   bool
}

func (s *chatService) ShouldStream(req *dto.ChatRequest) bool {
	if req.Stream != nil {
		return *req.Stream
	}
	return s.cfg.StreamByDefault
}

func (s *chatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	turn := s.prepare(ctx, req, false)

	reply, err := s.llm.Chat(ctx, turn.prompt, s.options()...)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	s.complete(ctx, turn, reply)

	return &dto.ChatResponse{
		Reply:     reply,
		SessionId: turn.sessionKey,
	}, nil
}

func (s *chatService) ChatStream(ctx context.Context, req *dto.ChatRequest) (*ChatStream, error) {
	turn := s.prepare(ctx, req, true)

	// The body is written after the handler returns, so the upstream call
	// must outlive the request context.
	detached := context.WithoutCancel(ctx)
	streamCtx, cancel := context.WithCancel(detached)
	upstream, err := s.llm.ChatStream(streamCtx, turn.prompt, s.options()...)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("open chat stream: %w", err)
	}

	return &ChatStream{
		SessionId: turn.sessionKey,
		upstream:  upstream,
		cancel:    cancel,
		finish: func(text string) {
			s.complete(detached, turn, text)
		},
		logger: s.logger,
	}, nil
}

func (s *chatService) SessionMemory(ctx context.Context, sessionId string) (*dto.SessionMemoryResponse, error) {
	history, err := s.memory.Load(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	return &dto.SessionMemoryResponse{
		SessionId: sessionId,
		Messages:  toMessageDTOs(history),
	}, nil
}

func (s *chatService) prepare(ctx context.Context, req *dto.ChatRequest, streamed bool) *chatTurn {
	turn := &chatTurn{
		sessionKey: req.SessionId,
		caller:     fromMessageDTOs(req.Messages),
		streamed:   streamed,
	}
	if turn.sessionKey == "" {
		turn.sessionKey = constant.AnonymousSessionPrefix + strconv.FormatInt(s.now().UnixMilli(), 10)
	}

	history, err := s.memory.Load(ctx, turn.sessionKey)
	if err != nil {
		s.logger.Warn("ChatService", "Session memory unavailable, continuing without it", map[string]interface{}{
			"session": turn.sessionKey,
			"error":   err.Error(),
		})
		history = nil
	}
	turn.history = history
	turn.prompt = assemblePrompt(s.cfg.SystemPrompt, turn.caller, history)
	return turn
}

// complete runs the bookkeeping after a successful invocation. Both steps are
// best-effort.
func (s *chatService) complete(ctx context.Context, turn *chatTurn, reply string) {
	conversation := make([]entity.ChatMessage, 0, len(turn.history)+len(turn.caller)+1)
	conversation = append(conversation, turn.history...)
	conversation = append(conversation, withoutSystem(turn.caller)...)
	conversation = append(conversation, entity.ChatMessage{Role: constant.ChatMessageRoleAssistant, Content: reply})

	if err := s.memory.Append(ctx, turn.sessionKey, conversation); err != nil {
		s.logger.Warn("ChatService", "Failed to update session memory", map[string]interface{}{
			"session": turn.sessionKey,
			"error":   err.Error(),
		})
	}

	s.reqLogger.Record(ctx, entity.LogKindChat,
		map[string]interface{}{
			"session_id": turn.sessionKey,
			"messages":   turn.caller,
			"memory":     len(turn.history),
			"stream":     turn.streamed,
			"model":      s.cfg.ChatModel,
		},
		map[string]interface{}{
			"reply": reply,
		},
	)
}

func (s *chatService) options() []llm.Option {
	opts := []llm.Option{llm.WithTemperature(s.cfg.Temperature)}
	if s.cfg.ChatModel != "" {
		opts = append(opts, llm.WithModel(s.cfg.ChatModel))
	}
	if s.cfg.MaxTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(s.cfg.MaxTokens))
	}
	return opts
}

// assemblePrompt prepends the default system prompt unless the caller sent
// one, then appends the stored memory as trailing context.
func assemblePrompt(systemPrompt string, caller, history []entity.ChatMessage) []llm.Message {
	prompt := make([]llm.Message, 0, len(caller)+len(history)+1)

	hasSystem := false
	for _, msg := range caller {
		if msg.Role == constant.ChatMessageRoleSystem {
			hasSystem = true
			break
		}
	}
	if !hasSystem {
		prompt = append(prompt, llm.Message{Role: constant.ChatMessageRoleSystem, Content: systemPrompt})
	}

	for _, msg := range caller {
		prompt = append(prompt, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	for _, msg := range history {
		prompt = append(prompt, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	return prompt
}

func fromMessageDTOs(in []dto.ChatMessageDTO) []entity.ChatMessage {
	out := make([]entity.ChatMessage, len(in))
	for i, m := range in {
		out[i] = entity.ChatMessage{Role: m.Role, Content: m.Content}
	}
	return out
}

func toMessageDTOs(in []entity.ChatMessage) []dto.ChatMessageDTO {
	out := make([]dto.ChatMessageDTO, len(in))
	for i, m := range in {
		out[i] = dto.ChatMessageDTO{Role: m.Role, Content: m.Content}
	}
	return out
}

// ChatStream is an opened upstream reply waiting to be forwarded.
type ChatStream struct {
	SessionId string

	upstream llm.Stream
	cancel   context.CancelFunc
	finish   func(text string)
	logger   logger.ILogger
}

// Drain forwards every chunk to w, flushing each one, and then updates
// memory and logs with the text produced so far. It stops reading upstream
// as soon as the client goes away.
func (cs *ChatStream) Drain(w *bufio.Writer) {
	tee := streaming.NewTee(w)
	err := streaming.Forward(cs.upstream, tee)

	if closeErr := cs.upstream.Close(); closeErr != nil {
		cs.logger.Debug("ChatService", "Closing upstream stream", map[string]interface{}{"error": closeErr.Error()})
	}
	cs.cancel()

	switch {
	case err == nil:
	case errors.Is(err, streaming.ErrClientGone):
		cs.logger.Info("ChatService", "Client disconnected mid-stream", map[string]interface{}{
			"session": cs.SessionId,
		})
	default:
		cs.logger.Warn("ChatService", "Upstream stream ended with error", map[string]interface{}{
			"session": cs.SessionId,
			"error":   err.Error(),
		})
	}

	cs.finish(tee.String())
}
