package normalizer

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	calls []string
	body  []byte
	err   error
}

func (f *countingFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	return f.body, f.err
}

func TestImageNormalizer_Normalize(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		fetchBody  []byte
		fetchErr   error
		wantB64    string
		wantSource Source
		wantURL    string
		wantFetch  int
	}{
		{
			name:       "data b64_json",
			raw:        `{"data":[{"b64_json":"AAAA"}]}`,
			wantB64:    "AAAA",
			wantSource: SourceInline,
		},
		{
			name:       "first element only",
			raw:        `{"data":[{"b64_json":"AAAA"},{"b64_json":"BBBB"}]}`,
			wantB64:    "AAAA",
			wantSource: SourceInline,
		},
		{
			name:       "base64 key",
			raw:        `{"data":[{"base64":"CCCC"}]}`,
			wantB64:    "CCCC",
			wantSource: SourceInline,
		},
		{
			name:       "images array",
			raw:        `{"images":[{"b64_json":"DDDD"}]}`,
			wantB64:    "DDDD",
			wantSource: SourceInline,
		},
		{
			name:       "inline beats url",
			raw:        `{"url":"https://x/y.png","images":[{"b64_json":"EEEE"}]}`,
			wantB64:    "EEEE",
			wantSource: SourceInline,
		},
		{
			name:       "top level url fetched",
			raw:        `{"url":"https://x/y.png"}`,
			fetchBody:  []byte("png"),
			wantB64:    base64.StdEncoding.EncodeToString([]byte("png")),
			wantSource: SourceURL,
			wantURL:    "https://x/y.png",
			wantFetch:  1,
		},
		{
			name:       "data url fetched",
			raw:        `{"data":[{"url":"https://x/z.png"}]}`,
			fetchBody:  []byte("png"),
			wantB64:    base64.StdEncoding.EncodeToString([]byte("png")),
			wantSource: SourceURL,
			wantURL:    "https://x/z.png",
			wantFetch:  1,
		},
		{
			name:       "url fetch failure yields absence",
			raw:        `{"url":"https://x/y.png"}`,
			fetchErr:   errors.New("connection refused"),
			wantSource: SourceNone,
			wantURL:    "https://x/y.png",
			wantFetch:  1,
		},
		{
			name:       "plain text encoded raw",
			raw:        `not json at all`,
			wantB64:    base64.StdEncoding.EncodeToString([]byte("not json at all")),
			wantSource: SourceRaw,
		},
		{
			name:       "json string unwrapped",
			raw:        `"hello"`,
			wantB64:    base64.StdEncoding.EncodeToString([]byte("hello")),
			wantSource: SourceRaw,
		},
		{
			name:       "unknown object shape",
			raw:        `{"created":1,"data":[]}`,
			wantSource: SourceNone,
		},
		{
			name:       "empty payload",
			raw:        ``,
			wantSource: SourceNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &countingFetcher{body: tt.fetchBody, err: tt.fetchErr}
			n := NewImageNormalizer(fetcher)

			res := n.Normalize(context.Background(), []byte(tt.raw))

			assert.Equal(t, tt.wantB64, res.Base64)
			assert.Equal(t, tt.wantSource, res.Source)
			assert.Equal(t, tt.wantURL, res.URL)
			assert.Len(t, fetcher.calls, tt.wantFetch)
			assert.Equal(t, tt.wantB64 != "", res.HasBytes())
			if tt.fetchErr != nil {
				assert.ErrorIs(t, res.FetchErr, tt.fetchErr)
			}
		})
	}
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			_, _ = w.Write([]byte("0123456789"))
		case "/big.png":
			_, _ = w.Write(make([]byte, 64))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewHTTPFetcher(time.Second, 32)

	body, err := f.Fetch(context.Background(), srv.URL+"/ok.png")
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(body))

	_, err = f.Fetch(context.Background(), srv.URL+"/big.png")
	assert.Error(t, err)

	_, err = f.Fetch(context.Background(), srv.URL+"/missing.png")
	assert.Error(t, err)
}
