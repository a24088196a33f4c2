package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotSupported is returned by providers for operations their backend lacks.
var ErrNotSupported = errors.New("operation not supported by provider")

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

// Options.Temperature is nil when the caller did not pick one, so an explicit
// zero still reaches the upstream.
type Options struct {
	Temperature *float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = &temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// Apply resolves options on top of the given defaults.
func Apply(defaults Options, opts ...Option) Options {
	for _, opt := range opts {
		opt(&defaults)
	}
	return defaults
}

// Stream yields reply text incrementally. Recv returns io.EOF once the
// upstream reply is complete.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// ChatStream is Chat with incremental delivery. The returned stream must be closed.
	ChatStream(ctx context.Context, history []Message, options ...Option) (Stream, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}

// ImageGenerator returns the raw, provider-shaped image payload. Shape
// differences are resolved by pkg/normalizer.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt, size string, options ...Option) (json.RawMessage, error)
}

type Provider interface {
	LLMProvider
	ImageGenerator
}
