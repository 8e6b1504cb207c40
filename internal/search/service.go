// Package search implements the retrieval service: it turns normalized
// patent documents into vector index entries and answers top-k semantic
// queries with similarity scores.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	apperrors "github.com/gcbaptista/patent-semantic-search/internal/errors"
	"github.com/gcbaptista/patent-semantic-search/internal/vectorstore"
	"github.com/gcbaptista/patent-semantic-search/model"
	"github.com/gcbaptista/patent-semantic-search/services"
)

// Service answers semantic search queries against the vector store.
// It holds no persistent state of its own; the store owns all durability.
type Service struct {
	store  *vectorstore.Store
	logger *slog.Logger
}

var _ services.Searcher = (*Service)(nil)

// NewService creates a new retrieval Service.
func NewService(store *vectorstore.Store, logger *slog.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("vector store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}, nil
}

// IsIndexed reports whether at least one document has been indexed. An absent
// collection reads as false rather than erroring.
func (s *Service) IsIndexed() bool {
	return s.store.Count() > 0
}

// IndexDocuments indexes the given documents into the vector store. With
// IndexModeRebuild the collection is dropped first; with IndexModeUpsert
// existing entries with the same patent number are overwritten in place.
//
// Indexing is a one-shot batch operation: callers must not run two calls
// concurrently against the same collection. Failures are logged and returned;
// the store may be left partially written.
func (s *Service) IndexDocuments(ctx context.Context, docs []model.PatentDocument, mode services.IndexMode) error {
	switch mode {
	case services.IndexModeUpsert:
	case services.IndexModeRebuild:
		if _, ok := s.store.Collection(); ok {
			if err := s.store.Reset(); err != nil {
				s.logger.Error("failed to reset collection for rebuild", "error", err)
				return fmt.Errorf("rebuild reset failed: %w", err)
			}
		}
	default:
		return apperrors.NewInvalidInputError("mode", fmt.Sprintf("unknown index mode %q", mode))
	}

	entries := make([]vectorstore.Entry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, vectorstore.Entry{
			ID: doc.PatentNumber,
			Metadata: map[string]string{
				"patent_number": doc.PatentNumber,
				"title":         doc.Title,
				"abstract":      doc.Abstract,
				"claims":        doc.Claims,
				"description":   doc.Description,
			},
			Content: doc.SearchableText,
		})
	}

	if err := s.store.Upsert(ctx, entries); err != nil {
		s.logger.Error("indexing failed", "document_count", len(entries), "error", err)
		return fmt.Errorf("failed to index documents: %w", err)
	}

	s.logger.Info("indexed documents", "count", len(entries), "mode", string(mode))
	return nil
}

// Search embeds the query, retrieves the topK nearest entries, and converts
// each cosine distance d into a similarity score round(1-d, 4). Results keep
// the store's order (ascending distance); ties fall to the store's own
// deterministic ordering. An empty index yields an empty slice, not an error.
//
// topK must be positive; this layer does not clamp it. Callers are expected
// to validate before calling (the HTTP boundary does).
func (s *Service) Search(ctx context.Context, query string, topK int) ([]model.SearchResult, error) {
	matches, err := s.store.Query(ctx, query, topK)
	if err != nil {
		return nil, err
	}

	results := make([]model.SearchResult, 0, len(matches))
	for _, match := range matches {
		results = append(results, model.SearchResult{
			PatentNumber: match.Metadata["patent_number"],
			Title:        match.Metadata["title"],
			Abstract:     match.Metadata["abstract"],
			Claims:       match.Metadata["claims"],
			Description:  match.Metadata["description"],
			Score:        roundScore(1 - match.Distance),
		})
	}
	return results, nil
}

// Stats returns a read-only snapshot of the indexed collection.
func (s *Service) Stats() (model.CollectionStats, error) {
	if _, ok := s.store.Collection(); !ok {
		return model.CollectionStats{}, apperrors.NewCollectionNotFoundError(s.store.CollectionName())
	}
	return model.CollectionStats{
		TotalDocuments: s.store.Count(),
		CollectionName: s.store.CollectionName(),
		Status:         "ready",
	}, nil
}

// roundScore rounds to 4 decimal digits.
func roundScore(score float64) float64 {
	return math.Round(score*10000) / 10000
}
