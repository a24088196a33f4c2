package llm

import (
	"bufio"
	"io"
	"net/http"
	"time"
)

// NewStreamingClient returns a client for long-lived streamed replies. It has
// no overall deadline; headerTimeout bounds dialing and the wait for response
// headers, and the request context bounds the body.
func NewStreamingClient(headerTimeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = headerTimeout
	return &http.Client{Transport: transport}
}

// lineStream reads a line-delimited upstream body and decodes each line with
// parse. parse returns done=true when the upstream signals completion and
// skip=true for lines that carry no text (keep-alives, empty SSE fields).
type lineStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	parse   func(line []byte) (text string, skip bool, done bool, err error)
	done    bool
}

// NewLineStream wraps an HTTP response body as a Stream.
func NewLineStream(body io.ReadCloser, parse func(line []byte) (string, bool, bool, error)) Stream {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &lineStream{body: body, scanner: scanner, parse: parse}
}

func (s *lineStream) Recv() (string, error) {
	for {
		if s.done {
			return "", io.EOF
		}
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		line := s.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		text, skip, done, err := s.parse(line)
		if err != nil {
			return "", err
		}
		if done {
			s.done = true
		}
		if skip || text == "" {
			continue
		}
		return text, nil
	}
}

func (s *lineStream) Close() error {
	return s.body.Close()
}
