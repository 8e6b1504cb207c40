// Package normalizer converts raw corpus patent records into flat, embeddable
// documents: markup is stripped, whitespace collapsed, and long fields are
// truncated deterministically.
package normalizer

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gcbaptista/patent-semantic-search/model"
)

const (
	// maxClaims is how many claims from the first claims group contribute to
	// the searchable text.
	maxClaims = 5

	// maxDescriptionChars is the hard truncation point for descriptions.
	// The truncation suffix is appended on top, so a truncated description
	// is maxDescriptionChars + len(truncationSuffix) characters long.
	maxDescriptionChars = 2000

	truncationSuffix = "..."
)

// Normalizer turns raw patent records into normalized documents.
type Normalizer struct {
	logger *slog.Logger
}

// New creates a Normalizer. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// CleanMarkup strips HTML markup from content, collapses whitespace runs to
// single spaces, and trims the ends.
func CleanMarkup(content string) (string, error) {
	if content == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse markup: %w", err)
	}

	return strings.Join(strings.Fields(doc.Text()), " "), nil
}

// Normalize converts a single raw patent record into a PatentDocument.
// Absent nested lists yield empty fields rather than errors. SearchableText
// is the space-joined concatenation of the abstract and claims excerpts and
// may be empty; callers decide whether such documents are indexable.
func (n *Normalizer) Normalize(raw model.RawPatent) (*model.PatentDocument, error) {
	var title string
	if len(raw.Titles) > 0 {
		title = raw.Titles[0].Text
	}

	var abstract string
	if len(raw.Abstracts) > 0 {
		cleaned, err := CleanMarkup(raw.Abstracts[0].ParagraphMarkup)
		if err != nil {
			return nil, fmt.Errorf("cleaning abstract: %w", err)
		}
		abstract = cleaned
	}

	var claims string
	if len(raw.Claims) > 0 {
		group := raw.Claims[0].Claims
		if len(group) > maxClaims {
			group = group[:maxClaims]
		}
		cleanedClaims := make([]string, 0, len(group))
		for _, claim := range group {
			cleaned, err := CleanMarkup(claim.ParagraphMarkup)
			if err != nil {
				return nil, fmt.Errorf("cleaning claim: %w", err)
			}
			cleanedClaims = append(cleanedClaims, cleaned)
		}
		claims = strings.Join(cleanedClaims, " ")
	}

	var description string
	if len(raw.Descriptions) > 0 {
		cleaned, err := CleanMarkup(raw.Descriptions[0].ParagraphMarkup)
		if err != nil {
			return nil, fmt.Errorf("cleaning description: %w", err)
		}
		description = truncate(cleaned, maxDescriptionChars)
	}

	return &model.PatentDocument{
		PatentNumber:   raw.PatentNumber,
		Title:          title,
		Abstract:       abstract,
		Claims:         claims,
		Description:    description,
		SearchableText: strings.TrimSpace(abstract + " " + claims),
	}, nil
}

// NormalizeAll normalizes a batch of raw records. Records that fail to
// normalize are logged and skipped, and records whose searchable text is
// empty are excluded entirely; neither aborts the batch.
func (n *Normalizer) NormalizeAll(raws []model.RawPatent) []model.PatentDocument {
	docs := make([]model.PatentDocument, 0, len(raws))
	for _, raw := range raws {
		doc, err := n.Normalize(raw)
		if err != nil {
			n.logger.Warn("skipping patent that failed to normalize",
				"patent_number", raw.PatentNumber,
				"error", err)
			continue
		}
		if doc.SearchableText == "" {
			n.logger.Debug("skipping patent with no searchable text",
				"patent_number", raw.PatentNumber)
			continue
		}
		docs = append(docs, *doc)
	}
	return docs
}

// truncate hard-truncates s to limit characters, appending the truncation
// suffix when anything was cut off. Operates on runes so multi-byte
// characters are never split.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + truncationSuffix
}
