package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SEOAutomation/internal/config"
)

func newTestClient(url string) *ChatGPTClient {
	return NewChatGPTClient(config.ChatGPTConfig{Endpoint: url, Model: "test-model", Timeout: 5 * time.Second})
}

func TestCompleteRequiresAPIKey(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Complete(context.Background(), "  ", "system", "prompt")

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.True(t, IsConfigError(err))
	assert.Zero(t, calls.Load())
}

func TestCompleteSendsChatRequest(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req chatRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			return
		}
		assert.Equal(t, "test-model", req.Model)
		assert.InDelta(t, 0.3, req.Temperature, 1e-9)
		assert.Equal(t, 1600, req.MaxTokens)
		if assert.Len(t, req.Messages, 2) {
			assert.Equal(t, chatMessage{Role: "system", Content: "system"}, req.Messages[0])
			assert.Equal(t, chatMessage{Role: "user", Content: "prompt"}, req.Messages[1])
		}

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  # Title\n\nBody  "}}]}`))
	}))
	defer server.Close()

	text, err := newTestClient(server.URL).Complete(context.Background(), "sk-test", "system", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "  # Title\n\nBody  ", text)
}

func TestCompleteServiceError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Complete(context.Background(), "key", "s", "p")

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusInternalServerError, svcErr.StatusCode)
	assert.Equal(t, `{"error":"boom"}`, svcErr.Body)
}

func TestCompleteEmptyResponses(t *testing.T) {
	t.Parallel()

	bodies := map[string]string{
		"no choices":    `{"choices":[]}`,
		"blank content": `{"choices":[{"message":{"content":"   "}}]}`,
		"not json":      `<html>`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).Complete(context.Background(), "key", "s", "p")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrEmptyResponse))
		})
	}
}

func TestCompleteTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(url).Complete(context.Background(), "key", "s", "p")

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestNewChatGPTClientDefaults(t *testing.T) {
	t.Parallel()

	c := NewChatGPTClient(config.ChatGPTConfig{})
	assert.Equal(t, defaultEndpoint, c.endpoint)
	assert.Equal(t, defaultModel, c.model)
	assert.Equal(t, defaultMaxTokens, c.maxTokens)
	assert.Equal(t, 80*time.Second, c.httpClient.Timeout)
}
