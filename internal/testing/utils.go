// Package testing provides shared test doubles and helpers for the patent
// search service, most importantly a deterministic stub embedder so retrieval
// behavior can be asserted without a live embedding model.
package testing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/patent-semantic-search/internal/vectorstore"
	"github.com/gcbaptista/patent-semantic-search/services"
)

const stubDimension = 8

// stubVocabulary maps known terms (and synonyms) to vector dimensions so that
// texts about the same topic land close together under cosine similarity.
var stubVocabulary = map[string]int{
	"cooling":       0,
	"cool":          0,
	"device":        1,
	"chip":          2,
	"chips":         2,
	"semiconductor": 2,
	"heating":       3,
	"heat":          3,
	"water":         4,
	"method":        5,
	"claim":         6,
}

// StubEmbedder is a deterministic bag-of-words embedder over a tiny fixed
// vocabulary. Unknown tokens share a catch-all dimension so no text embeds to
// the zero vector.
type StubEmbedder struct{}

var _ services.Embedder = StubEmbedder{}

// Embed returns a deterministic term-count vector for the text.
func (StubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vector := make([]float32, stubDimension)
	for _, field := range strings.Fields(strings.ToLower(text)) {
		token := strings.TrimFunc(field, func(r rune) bool {
			return r < 'a' || r > 'z'
		})
		if token == "" {
			continue
		}
		dim, ok := stubVocabulary[token]
		if !ok {
			dim = stubDimension - 1
		}
		vector[dim]++
	}
	return vector, nil
}

// EmbedBatch embeds each text in order.
func (e StubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vector, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, vector)
	}
	return vectors, nil
}

// FailingEmbedder always errors; it exercises embedding failure paths.
type FailingEmbedder struct{}

var _ services.Embedder = FailingEmbedder{}

// Embed always returns an error.
func (FailingEmbedder) Embed(context.Context, string) ([]float32, error) {
	return nil, errors.New("embedder unavailable")
}

// EmbedBatch always returns an error.
func (FailingEmbedder) EmbedBatch(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("embedder unavailable")
}

// NewTestStore creates a vector store over a temp directory with the stub
// embedder, cleaned up with the test.
func NewTestStore(t *testing.T, collectionName string) *vectorstore.Store {
	t.Helper()
	store, err := vectorstore.NewStore(t.TempDir(), collectionName, StubEmbedder{}, nil)
	require.NoError(t, err)
	return store
}
