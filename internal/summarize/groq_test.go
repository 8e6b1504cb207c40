package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGroqTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func completionJSON(content string) chatResponse {
	var resp chatResponse
	resp.Choices = []struct {
		Message chatMessage `json:"message"`
	}{
		{Message: chatMessage{Role: "assistant", Content: content}},
	}
	return resp
}

func TestGroqComplete(t *testing.T) {
	var gotReq chatRequest
	var gotAuth string
	server := newGroqTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(completionJSON("The patents describe cooling systems."))
	})

	client := NewGroqClient(GroqConfig{BaseURL: server.URL, APIKey: "test-key"})

	got, err := client.Complete(context.Background(), "system text", "user text")
	require.NoError(t, err)

	assert.Equal(t, "The patents describe cooling systems.", got)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, defaultGroqModel, gotReq.Model)
	assert.InDelta(t, defaultTemperature, gotReq.Temperature, 1e-9)
	assert.Equal(t, defaultMaxTokens, gotReq.MaxTokens)
	assert.False(t, gotReq.Stream)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "system text", gotReq.Messages[0].Content)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.Equal(t, "user text", gotReq.Messages[1].Content)
}

func TestGroqComplete_MissingAPIKey(t *testing.T) {
	client := NewGroqClient(GroqConfig{BaseURL: "http://unused"})

	_, err := client.Complete(context.Background(), "s", "u")
	require.Error(t, err)

	var providerErr *ProviderError
	require.True(t, errors.As(err, &providerErr), "missing credentials are a provider failure")
}

func TestGroqComplete_ProviderFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error": "rate limit exceeded"}`, http.StatusTooManyRequests)
			},
		},
		{
			name: "malformed response body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(chatResponse{})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newGroqTestServer(t, tt.handler)
			client := NewGroqClient(GroqConfig{BaseURL: server.URL, APIKey: "k"})

			_, err := client.Complete(context.Background(), "s", "u")
			require.Error(t, err)

			var providerErr *ProviderError
			assert.True(t, errors.As(err, &providerErr), "expected *ProviderError, got %T", err)
		})
	}
}

func TestGroqComplete_TransportFailure(t *testing.T) {
	// Closed server: connection refused.
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewGroqClient(GroqConfig{BaseURL: url, APIKey: "k"})

	_, err := client.Complete(context.Background(), "s", "u")
	require.Error(t, err)

	var providerErr *ProviderError
	assert.True(t, errors.As(err, &providerErr))
}

func TestNewGroqClient_Defaults(t *testing.T) {
	client := NewGroqClient(GroqConfig{})

	assert.Equal(t, defaultGroqBaseURL, client.cfg.BaseURL)
	assert.Equal(t, defaultGroqModel, client.cfg.Model)
	assert.InDelta(t, defaultTemperature, client.cfg.Temperature, 1e-9)
	assert.Equal(t, defaultMaxTokens, client.cfg.MaxTokens)
	assert.Equal(t, defaultGroqTimeout, client.httpClient.Timeout)
}
