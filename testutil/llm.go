// Package testutil holds fakes shared by package tests.
package testutil

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"ai-gateway-be/pkg/llm"
)

// FakeProvider records every prompt it receives.
type FakeProvider struct {
	mu sync.Mutex

	Reply   string
	ChatErr error
	// OnChat runs inside Chat before it returns.
	OnChat func(history []llm.Message)

	Chunks    []string
	OpenErr   error
	RecvErr   error
	OnRecv    func(i int)
	Streams   []*FakeStream
	ImageRaw  json.RawMessage
	ImageErr  error
	ImageArgs [][2]string

	Calls [][]llm.Message
	Opts  []llm.Options
}

var _ llm.Provider = (*FakeProvider)(nil)

func (p *FakeProvider) record(history []llm.Message, opts []llm.Option) {
	p.mu.Lock()
	defer p.mu.Unlock()
	cp := make([]llm.Message, len(history))
	copy(cp, history)
	p.Calls = append(p.Calls, cp)
	p.Opts = append(p.Opts, llm.Apply(llm.Options{}, opts...))
}

func (p *FakeProvider) Chat(_ context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	p.record(history, opts)
	if p.OnChat != nil {
		p.OnChat(history)
	}
	if p.ChatErr != nil {
		return "", p.ChatErr
	}
	return p.Reply, nil
}

func (p *FakeProvider) ChatStream(ctx context.Context, history []llm.Message, opts ...llm.Option) (llm.Stream, error) {
	p.record(history, opts)
	if p.OpenErr != nil {
		return nil, p.OpenErr
	}
	s := &FakeStream{Chunks: p.Chunks, Err: p.RecvErr, OnRecv: p.OnRecv, ctx: ctx}
	p.mu.Lock()
	p.Streams = append(p.Streams, s)
	p.mu.Unlock()
	return s, nil
}

func (p *FakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func (p *FakeProvider) GenerateImage(_ context.Context, prompt, size string, _ ...llm.Option) (json.RawMessage, error) {
	p.mu.Lock()
	p.ImageArgs = append(p.ImageArgs, [2]string{prompt, size})
	p.mu.Unlock()
	if p.ImageErr != nil {
		return nil, p.ImageErr
	}
	return p.ImageRaw, nil
}

func (p *FakeProvider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Calls)
}

func (p *FakeProvider) LastCall() []llm.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Calls) == 0 {
		return nil
	}
	return p.Calls[len(p.Calls)-1]
}

// FakeStream yields Chunks, then Err (or io.EOF).
type FakeStream struct {
	Chunks []string
	Err    error
	OnRecv func(i int)

	mu     sync.Mutex
	reads  int
	closed bool
	ctx    context.Context
}

func (s *FakeStream) Recv() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", io.ErrClosedPipe
	}
	if s.OnRecv != nil {
		s.OnRecv(s.reads)
	}
	if s.reads < len(s.Chunks) {
		s.reads++
		return s.Chunks[s.reads-1], nil
	}
	if s.Err != nil {
		return "", s.Err
	}
	return "", io.EOF
}

func (s *FakeStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *FakeStream) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

func (s *FakeStream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Context is the context the stream was opened with.
func (s *FakeStream) Context() context.Context {
	return s.ctx
}

// FakeEmbedder returns Vector for every input.
type FakeEmbedder struct {
	Vector []float32
	Err    error
	Inputs []string
}

func (e *FakeEmbedder) Generate(_ context.Context, text string) ([]float32, error) {
	e.Inputs = append(e.Inputs, text)
	if e.Err != nil {
		return nil, e.Err
	}
	return e.Vector, nil
}
