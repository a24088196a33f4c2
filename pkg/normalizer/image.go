// Package normalizer turns provider-shaped image generation payloads into a
// single base64 value.
package normalizer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
)

type Source string

const (
	SourceInline Source = "inline"
	SourceURL    Source = "url"
	SourceRaw    Source = "raw"
	SourceNone   Source = "none"
)

// Result is the outcome of a normalization. An empty Base64 is a valid
// outcome; FetchErr carries the diagnostic when a URL could not be fetched.
type Result struct {
	Base64   string
	Source   Source
	URL      string
	FetchErr error
}

func (r Result) HasBytes() bool {
	return r.Base64 != ""
}

type candidate struct {
	b64 string
	url string
}

// strategy inspects a decoded document and reports a candidate when its
// shape matches.
type strategy func(doc map[string]json.RawMessage) (candidate, bool)

// strategies run in priority order; the first match wins.
var strategies = []strategy{
	inlineFromArray("data"),
	inlineFromArray("images"),
	topLevelURL,
	urlFromArray("data"),
}

var inlineKeys = []string{"b64_json", "base64"}

type ImageNormalizer struct {
	fetcher Fetcher
}

func NewImageNormalizer(fetcher Fetcher) *ImageNormalizer {
	return &ImageNormalizer{fetcher: fetcher}
}

// Normalize never fails. A URL found without inline bytes is fetched exactly
// once; anything that is not a JSON object is encoded as-is.
func (n *ImageNormalizer) Normalize(ctx context.Context, raw []byte) Result {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Result{Source: SourceNone}
	}

	var doc map[string]json.RawMessage
	if trimmed[0] != '{' || json.Unmarshal(trimmed, &doc) != nil {
		return encodeRaw(trimmed)
	}

	for _, try := range strategies {
		c, ok := try(doc)
		if !ok {
			continue
		}
		if c.b64 != "" {
			return Result{Base64: c.b64, Source: SourceInline}
		}
		return n.fetch(ctx, c.url)
	}

	return Result{Source: SourceNone}
}

func (n *ImageNormalizer) fetch(ctx context.Context, url string) Result {
	if n.fetcher == nil {
		return Result{Source: SourceNone, URL: url}
	}
	body, err := n.fetcher.Fetch(ctx, url)
	if err != nil {
		return Result{Source: SourceNone, URL: url, FetchErr: err}
	}
	if len(body) == 0 {
		return Result{Source: SourceNone, URL: url}
	}
	return Result{
		Base64: base64.StdEncoding.EncodeToString(body),
		Source: SourceURL,
		URL:    url,
	}
}

func encodeRaw(payload []byte) Result {
	// a bare JSON string is unwrapped first
	var s string
	if payload[0] == '"' && json.Unmarshal(payload, &s) == nil {
		if s == "" {
			return Result{Source: SourceNone}
		}
		payload = []byte(s)
	}
	return Result{Base64: base64.StdEncoding.EncodeToString(payload), Source: SourceRaw}
}

func inlineFromArray(field string) strategy {
	return func(doc map[string]json.RawMessage) (candidate, bool) {
		first, ok := firstObject(doc[field])
		if !ok {
			return candidate{}, false
		}
		for _, key := range inlineKeys {
			if v := stringField(first, key); v != "" {
				return candidate{b64: v}, true
			}
		}
		return candidate{}, false
	}
}

func topLevelURL(doc map[string]json.RawMessage) (candidate, bool) {
	if v := stringField(doc, "url"); v != "" {
		return candidate{url: v}, true
	}
	return candidate{}, false
}

func urlFromArray(field string) strategy {
	return func(doc map[string]json.RawMessage) (candidate, bool) {
		first, ok := firstObject(doc[field])
		if !ok {
			return candidate{}, false
		}
		if v := stringField(first, "url"); v != "" {
			return candidate{url: v}, true
		}
		return candidate{}, false
	}
}

func firstObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(items[0], &obj); err != nil {
		return nil, false
	}
	return obj, true
}

func stringField(obj map[string]json.RawMessage, key string) string {
	raw, ok := obj[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
