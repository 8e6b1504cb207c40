package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestEmbed(t *testing.T) {
	var gotReq embedRequest
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/embeddings", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(embedResponse{Embedding: []float32{0.1, 0.2, 0.3}})
	})

	embedder := NewOllamaEmbedder(Config{BaseURL: server.URL, Model: "test-model"})

	vector, err := embedder.Embed(context.Background(), "cooling device")
	require.NoError(t, err)

	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector)
	assert.Equal(t, "test-model", gotReq.Model)
	assert.Equal(t, "cooling device", gotReq.Prompt)
}

func TestEmbed_ServerError(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	})

	embedder := NewOllamaEmbedder(Config{BaseURL: server.URL})

	_, err := embedder.Embed(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestEmbed_EmptyEmbedding(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embedResponse{})
	})

	embedder := NewOllamaEmbedder(Config{BaseURL: server.URL})

	_, err := embedder.Embed(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty embedding")
}

func TestEmbedBatch(t *testing.T) {
	calls := 0
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(embedResponse{Embedding: []float32{float32(calls)}})
	})

	embedder := NewOllamaEmbedder(Config{BaseURL: server.URL})

	vectors, err := embedder.EmbedBatch(context.Background(), []string{"one", "two", "three"})
	require.NoError(t, err)

	require.Len(t, vectors, 3)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []float32{1}, vectors[0])
	assert.Equal(t, []float32{3}, vectors[2])
}

func TestNewOllamaEmbedder_Defaults(t *testing.T) {
	embedder := NewOllamaEmbedder(Config{})

	assert.Equal(t, defaultBaseURL, embedder.baseURL)
	assert.Equal(t, defaultModel, embedder.Model())
	assert.Equal(t, defaultTimeout, embedder.httpClient.Timeout)
}
