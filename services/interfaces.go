// Package services defines the contracts shared between the HTTP layer and
// the internal implementations: embedding, retrieval, and summarization.
package services

import (
	"context"

	"github.com/gcbaptista/patent-semantic-search/model"
)

// IndexMode controls how IndexDocuments treats an already-populated store.
type IndexMode string

const (
	// IndexModeUpsert adds documents into the existing collection,
	// overwriting entries with the same patent number.
	IndexModeUpsert IndexMode = "upsert"

	// IndexModeRebuild drops the collection and indexes from scratch.
	IndexModeRebuild IndexMode = "rebuild"
)

// Embedder maps text to a fixed-length dense vector. The same instance must
// be used for indexing and for query encoding; vectors from different models
// are not geometrically comparable.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Searcher defines the retrieval service operations.
type Searcher interface {
	// IsIndexed reports whether the backing collection exists and holds at
	// least one document. It never errors; an absent collection reads as false.
	IsIndexed() bool

	// IndexDocuments embeds and upserts the given documents. Failures are
	// fatal to the call and may leave the store partially written.
	IndexDocuments(ctx context.Context, docs []model.PatentDocument, mode IndexMode) error

	// Search returns up to topK results ordered most-similar first.
	// An empty result set is not an error. topK must be positive; callers
	// are expected to validate it before reaching this layer.
	Search(ctx context.Context, query string, topK int) ([]model.SearchResult, error)

	// Stats returns a snapshot of the indexed collection, or
	// errors.ErrCollectionNotFound when no collection has been created yet.
	Stats() (model.CollectionStats, error)
}

// Summarizer produces a natural-language summary of retrieved passages.
// It never fails: provider outages degrade to a local extractive summary,
// and unexpected errors degrade to an error-description string.
type Summarizer interface {
	Summarize(ctx context.Context, passages []string) string
}
