package streaming

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceSource struct {
	chunks []string
	err    error
	reads  int
}

func (s *sliceSource) Recv() (string, error) {
	if s.reads < len(s.chunks) {
		s.reads++
		return s.chunks[s.reads-1], nil
	}
	if s.err != nil {
		return "", s.err
	}
	return "", io.EOF
}

type failingWriter struct {
	okWrites int
	writes   int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes > w.okWrites {
		return 0, errors.New("broken pipe")
	}
	return len(p), nil
}

func (w *failingWriter) Flush() error { return nil }

func TestForward_DrainsAndAccumulates(t *testing.T) {
	var out bytes.Buffer
	tee := NewTee(bufio.NewWriter(&out))

	err := Forward(&sliceSource{chunks: []string{"Hel", "lo", " world"}}, tee)

	require.NoError(t, err)
	assert.Equal(t, "Hello world", out.String())
	assert.Equal(t, "Hello world", tee.String())
}

func TestForward_StopsWhenClientGone(t *testing.T) {
	w := &failingWriter{okWrites: 1}
	src := &sliceSource{chunks: []string{"a", "b", "c", "d"}}
	tee := NewTee(w)

	err := Forward(src, tee)

	assert.ErrorIs(t, err, ErrClientGone)
	assert.Equal(t, 2, src.reads)
	assert.Equal(t, "ab", tee.String())
}

func TestForward_UpstreamError(t *testing.T) {
	var out bytes.Buffer
	upstreamErr := errors.New("reset by peer")
	tee := NewTee(bufio.NewWriter(&out))

	err := Forward(&sliceSource{chunks: []string{"partial"}, err: upstreamErr}, tee)

	assert.ErrorIs(t, err, upstreamErr)
	assert.NotErrorIs(t, err, ErrClientGone)
	assert.Equal(t, "partial", tee.String())
}
