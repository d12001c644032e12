package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/pagetest.net/internal/adapter/logging"
	"gitlab.com/pagetest.net/internal/config"
)

func newOpenAI(url string) *OpenAIProvider {
	return NewOpenAIProvider(&config.ModelConfig{
		BaseURL:     url + "/v1/",
		APIKey:      "sk-test",
		Model:       "gpt-test",
		Temperature: 0.2,
		Timeout:     5 * time.Second,
	}, logging.NewNopLogger())
}

func TestOpenAIProvider_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-test", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "write tests", req.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"test('a', f);"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	out, err := newOpenAI(srv.URL).Complete(context.Background(), "write tests")
	require.NoError(t, err)
	assert.Equal(t, "test('a', f);", out)
}

func TestOpenAIProvider_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"You exceeded your current quota","type":"insufficient_quota"}}`))
	}))
	defer srv.Close()

	_, err := newOpenAI(srv.URL).Complete(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "exceeded your current quota")
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := newOpenAI(srv.URL).Complete(context.Background(), "x")
	assert.ErrorContains(t, err, "no choices")
}

func TestOpenAIProvider_ContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := newOpenAI(srv.URL).Complete(ctx, "x")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
