package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ai-gateway-be/pkg/llm"
)

// Provider talks to any OpenAI-compatible API (OpenAI, OpenRouter, vLLM...).
type Provider struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	// streamClient has no overall timeout so long replies are not cut off.
	streamClient *http.Client
}

var _ llm.Provider = &Provider{}

func NewProvider(baseURL, apiKey, model string, timeout time.Duration) *Provider {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Provider{
		apiKey:       apiKey,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		model:        model,
		httpClient:   &http.Client{Timeout: timeout},
		streamClient: llm.NewStreamingClient(timeout),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type imageRequest struct {
	Model  string `json:"model,omitempty"`
	Prompt string `json:"prompt"`
	Size   string `json:"size,omitempty"`
	N      int    `json:"n"`
}

func (p *Provider) buildChatRequest(history []llm.Message, stream bool, opts ...llm.Option) chatRequest {
	options := llm.Apply(llm.Options{Model: p.model}, opts...)

	messages := make([]chatMessage, len(history))
	for i, m := range history {
		messages[i] = chatMessage{Role: m.Role, Content: m.Content}
	}

	req := chatRequest{
		Model:     options.Model,
		Messages:  messages,
		MaxTokens: options.MaxTokens,
		Stream:    stream,
	}
	if options.Temperature != nil {
		t := *options.Temperature
		req.Temperature = &t
	}
	return req
}

func (p *Provider) post(ctx context.Context, client *http.Client, path string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%s: status %d, body: %s", path, resp.StatusCode, string(respBody))
	}
	return resp, nil
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	resp, err := p.post(ctx, p.httpClient, "/chat/completions", p.buildChatRequest(history, false, opts...))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("chat completion error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return chatResp.Choices[0].Message.Content, nil
}

// ChatStream consumes server-sent events until the "[DONE]" sentinel.
func (p *Provider) ChatStream(ctx context.Context, history []llm.Message, opts ...llm.Option) (llm.Stream, error) {
	resp, err := p.post(ctx, p.streamClient, "/chat/completions", p.buildChatRequest(history, true, opts...))
	if err != nil {
		return nil, err
	}

	return llm.NewLineStream(resp.Body, parseSSELine), nil
}

func parseSSELine(line []byte) (string, bool, bool, error) {
	data, ok := bytes.CutPrefix(line, []byte("data:"))
	if !ok {
		// comments, event names, ids
		return "", true, false, nil
	}
	data = bytes.TrimSpace(data)
	if string(data) == "[DONE]" {
		return "", true, true, nil
	}

	var chunk chatResponse
	if err := json.Unmarshal(data, &chunk); err != nil {
		return "", false, false, fmt.Errorf("unmarshal chunk: %w", err)
	}
	if chunk.Error != nil {
		return "", false, false, fmt.Errorf("stream error: %s", chunk.Error.Message)
	}
	if len(chunk.Choices) == 0 {
		return "", true, false, nil
	}
	return chunk.Choices[0].Delta.Content, false, false, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

// GenerateImage returns the upstream body untouched; callers normalize it.
func (p *Provider) GenerateImage(ctx context.Context, prompt, size string, opts ...llm.Option) (json.RawMessage, error) {
	options := llm.Apply(llm.Options{}, opts...)

	resp, err := p.post(ctx, p.httpClient, "/images/generations", imageRequest{
		Model:  options.Model,
		Prompt: prompt,
		Size:   size,
		N:      1,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return json.RawMessage(body), nil
}
