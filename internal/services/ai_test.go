package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeOpenAI(t *testing.T, status int, content string, seen *string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if seen != nil && len(req.Messages) > 0 {
			*seen = req.Messages[0].Content
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  req.Model,
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]any{"role": "assistant", "content": content},
				},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAIService_Generate(t *testing.T) {
	var seen string
	srv := newFakeOpenAI(t, http.StatusOK, "  A concise summary.  ", &seen)
	svc := NewAIService("test-key", AIOptions{BaseURL: srv.URL, Timeout: 5 * time.Second})

	text, err := svc.Generate(context.Background(), "Summarize this")
	require.NoError(t, err)
	assert.Equal(t, "A concise summary.", text)
	assert.Equal(t, "Summarize this", seen)
}

func TestAIService_BlankReply(t *testing.T) {
	srv := newFakeOpenAI(t, http.StatusOK, "   ", nil)
	svc := NewAIService("test-key", AIOptions{BaseURL: srv.URL})

	_, err := svc.Generate(context.Background(), "Summarize this")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestAIService_APIError(t *testing.T) {
	srv := newFakeOpenAI(t, http.StatusInternalServerError, "", nil)
	svc := NewAIService("test-key", AIOptions{BaseURL: srv.URL})

	_, err := svc.Generate(context.Background(), "Summarize this")
	assert.Error(t, err)
}
