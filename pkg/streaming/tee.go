// Package streaming forwards incremental upstream text to a client while
// keeping a copy of everything produced.
package streaming

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrClientGone is returned once a write to the client has failed.
var ErrClientGone = errors.New("client stopped receiving")

// FlushWriter is satisfied by *bufio.Writer.
type FlushWriter interface {
	io.Writer
	Flush() error
}

// Source yields chunks until io.EOF.
type Source interface {
	Recv() (string, error)
}

// Tee writes and flushes every chunk to the client and accumulates it.
type Tee struct {
	mu     sync.Mutex
	out    FlushWriter
	buf    strings.Builder
	failed error
}

func NewTee(out FlushWriter) *Tee {
	return &Tee{out: out}
}

// Write records the chunk and forwards it. After the first failed write,
// chunks are still recorded but no longer forwarded.
func (t *Tee) Write(chunk string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buf.WriteString(chunk)
	if t.failed != nil {
		return t.failed
	}
	if _, err := io.WriteString(t.out, chunk); err != nil {
		t.failed = fmt.Errorf("%w: %v", ErrClientGone, err)
		return t.failed
	}
	if err := t.out.Flush(); err != nil {
		t.failed = fmt.Errorf("%w: %v", ErrClientGone, err)
		return t.failed
	}
	return nil
}

// String returns everything written so far.
func (t *Tee) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.String()
}

// Forward drains src into the tee. It returns nil when src is exhausted,
// an ErrClientGone error when the client write fails, or the upstream error.
func Forward(src Source, t *Tee) error {
	for {
		chunk, err := src.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("upstream stream: %w", err)
		}
		if err := t.Write(chunk); err != nil {
			return err
		}
	}
}
