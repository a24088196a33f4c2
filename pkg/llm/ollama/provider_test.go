package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-gateway-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaProvider_Chat(t *testing.T) {
	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"hi there"},"done":true}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3", 0)
	reply, err := p.Chat(context.Background(), []llm.Message{
		{Role: "system", Content: "be nice"},
		{Role: "user", Content: "hello"},
	}, llm.WithMaxTokens(64))

	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)
	assert.False(t, got.Stream)
	assert.Equal(t, "llama3", got.Model)
	assert.Equal(t, 64, got.Options.NumPredict)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
}

func TestOllamaProvider_ChatUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3", 0)
	_, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestOllamaProvider_ChatStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)
		_, _ = io.WriteString(w, `{"message":{"role":"assistant","content":"Hel"},"done":false}`+"\n")
		_, _ = io.WriteString(w, `{"message":{"role":"assistant","content":"lo"},"done":false}`+"\n")
		_, _ = io.WriteString(w, `{"message":{"role":"assistant","content":""},"done":true}`+"\n")
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3", 0)
	stream, err := p.ChatStream(context.Background(), []llm.Message{{Role: "user", Content: "x"}})
	require.NoError(t, err)
	defer stream.Close()

	var chunks []string
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		chunks = append(chunks, chunk)
	}
	assert.Equal(t, []string{"Hel", "lo"}, chunks)
}

func TestOllamaProvider_GenerateImageNotSupported(t *testing.T) {
	p := NewOllamaProvider("http://unused", "llama3", 0)
	_, err := p.GenerateImage(context.Background(), "a cat", "256x256")
	assert.ErrorIs(t, err, llm.ErrNotSupported)
}

func TestOllamaProvider_ChatStreamOutlivesRequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)
		for i := 0; i < 6; i++ {
			_, _ = io.WriteString(w, `{"message":{"role":"assistant","content":"y"},"done":false}`+"\n")
			flusher.Flush()
			time.Sleep(100 * time.Millisecond)
		}
		_, _ = io.WriteString(w, `{"message":{"role":"assistant","content":""},"done":true}`+"\n")
		flusher.Flush()
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3", 250*time.Millisecond)
	stream, err := p.ChatStream(context.Background(), []llm.Message{{Role: "user", Content: "x"}})
	require.NoError(t, err)
	defer stream.Close()

	var out string
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		out += chunk
	}
	assert.Equal(t, "yyyyyy", out)
}

func TestOllamaProvider_TemperatureDefaultsAndExplicitZero(t *testing.T) {
	var got []ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		got = append(got, req)
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"ok"},"done":true}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3", 0)
	msgs := []llm.Message{{Role: "user", Content: "x"}}
	_, err := p.Chat(context.Background(), msgs)
	require.NoError(t, err)
	_, err = p.Chat(context.Background(), msgs, llm.WithTemperature(0))
	require.NoError(t, err)

	require.Len(t, got, 2)
	require.NotNil(t, got[0].Options.Temperature)
	assert.Equal(t, 0.7, *got[0].Options.Temperature)
	require.NotNil(t, got[1].Options.Temperature)
	assert.Equal(t, 0.0, *got[1].Options.Temperature)
}
