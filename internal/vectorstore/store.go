// Package vectorstore persists patent embeddings in an embedded chromem-go
// database and answers k-nearest-neighbor queries under cosine distance.
package vectorstore

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	chromem "github.com/philippgille/chromem-go"

	apperrors "github.com/gcbaptista/patent-semantic-search/internal/errors"
	"github.com/gcbaptista/patent-semantic-search/services"
)

// Entry is a single document to index: the content is the text that gets
// embedded, the metadata is what queries retrieve alongside the match.
type Entry struct {
	ID       string
	Metadata map[string]string
	Content  string
}

// Match is a single query hit. Distance is the cosine distance
// (1 - cosine similarity); smaller means more similar.
type Match struct {
	ID       string
	Metadata map[string]string
	Content  string
	Distance float64
}

// Store wraps a persistent chromem-go database holding one named collection.
// Entries are keyed by patent number: upserting an existing ID overwrites its
// entry. The collection's distance metric (cosine) is fixed at creation time;
// changing it requires a rebuild.
//
// Reads (Count, Query) are safe to issue concurrently; they are not safe to
// interleave with an in-progress Upsert, which exposes partial writes.
type Store struct {
	db             *chromem.DB
	collectionName string
	embeddingFunc  chromem.EmbeddingFunc
	logger         *slog.Logger
}

// NewEmbeddingFunc bridges a services.Embedder into chromem-go's embedding
// callback. chromem-go normalizes vectors itself, so none is done here.
func NewEmbeddingFunc(embedder services.Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		vector, err := embedder.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed failed: %w", err)
		}
		return vector, nil
	}
}

// NewStore opens (or creates) a persistent database under persistDir. The
// named collection is bound lazily: it is only created on the first Upsert,
// so a store over an empty directory reports zero entries rather than
// erroring.
func NewStore(persistDir, collectionName string, embedder services.Embedder, logger *slog.Logger) (*Store, error) {
	if collectionName == "" {
		return nil, fmt.Errorf("collection name cannot be empty")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	db, err := chromem.NewPersistentDB(persistDir, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector database at %s: %w", persistDir, err)
	}

	return &Store{
		db:             db,
		collectionName: collectionName,
		embeddingFunc:  NewEmbeddingFunc(embedder),
		logger:         logger,
	}, nil
}

// CollectionName returns the fixed name of the backing collection.
func (s *Store) CollectionName() string {
	return s.collectionName
}

// Collection returns the backing collection and whether it exists yet.
func (s *Store) Collection() (*chromem.Collection, bool) {
	collection := s.db.GetCollection(s.collectionName, s.embeddingFunc)
	return collection, collection != nil
}

// Count returns the number of indexed entries; 0 when the collection has
// never been created.
func (s *Store) Count() int {
	collection, ok := s.Collection()
	if !ok {
		return 0
	}
	return collection.Count()
}

// Upsert indexes the given entries, creating the collection with the cosine
// metric on first use. Entries with an already-indexed ID are overwritten.
// The write is bulk but not transactional: a failure partway may leave the
// collection partially written.
func (s *Store) Upsert(ctx context.Context, entries []Entry) error {
	collection, err := s.db.GetOrCreateCollection(
		s.collectionName,
		map[string]string{"hnsw:space": "cosine"},
		s.embeddingFunc,
	)
	if err != nil {
		return fmt.Errorf("failed to get or create collection %s: %w", s.collectionName, err)
	}
	if len(entries) == 0 {
		return nil
	}

	docs := make([]chromem.Document, 0, len(entries))
	for _, entry := range entries {
		docs = append(docs, chromem.Document{
			ID:       entry.ID,
			Metadata: entry.Metadata,
			Content:  entry.Content,
		})
	}

	if err := collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents to collection %s: %w", s.collectionName, err)
	}

	s.logger.Debug("upserted entries", "collection", s.collectionName, "count", len(entries))
	return nil
}

// Query embeds the given text and returns up to k matches ordered ascending
// by cosine distance. k is clamped to the entry count; an empty collection
// yields an empty slice, while a collection that has never been created
// yields ErrCollectionNotFound.
func (s *Store) Query(ctx context.Context, text string, k int) ([]Match, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewInvalidInputError("query", "cannot be empty")
	}
	if k <= 0 {
		return nil, apperrors.NewInvalidInputError("k", "must be positive")
	}

	collection, ok := s.Collection()
	if !ok {
		return nil, apperrors.NewCollectionNotFoundError(s.collectionName)
	}

	count := collection.Count()
	if count == 0 {
		return []Match{}, nil
	}
	if k > count {
		k = count
	}

	results, err := collection.Query(ctx, text, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("vector query failed: %w", err)
	}

	// chromem-go returns results ordered by similarity descending, which is
	// exactly ascending cosine distance.
	matches := make([]Match, 0, len(results))
	for _, result := range results {
		matches = append(matches, Match{
			ID:       result.ID,
			Metadata: result.Metadata,
			Content:  result.Content,
			Distance: 1 - float64(result.Similarity),
		})
	}
	return matches, nil
}

// Reset drops the collection, including its persisted files. A subsequent
// Upsert recreates it from scratch.
func (s *Store) Reset() error {
	if err := s.db.DeleteCollection(s.collectionName); err != nil {
		return fmt.Errorf("failed to delete collection %s: %w", s.collectionName, err)
	}
	return nil
}
