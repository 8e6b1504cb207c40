// Package model defines the document shapes shared across the service:
// the raw corpus records, the normalized patent documents that get indexed,
// and the search result types returned to callers.
package model

// RawTitle is a single title entry in a raw patent record.
type RawTitle struct {
	Text string `json:"text"`
}

// RawParagraph is a markup-bearing paragraph in a raw patent record.
type RawParagraph struct {
	ParagraphMarkup string `json:"paragraph_markup"`
}

// RawClaimsGroup is a group of claims in a raw patent record. Only the first
// group is used during normalization.
type RawClaimsGroup struct {
	Claims []RawParagraph `json:"claims"`
}

// RawPatent mirrors the heterogeneous JSON shape of a corpus patent file.
// All nested lists are optional; an absent list normalizes to an empty string.
type RawPatent struct {
	PatentNumber string          `json:"patent_number"`
	Titles       []RawTitle      `json:"titles"`
	Abstracts    []RawParagraph  `json:"abstracts"`
	Claims       []RawClaimsGroup `json:"claims"`
	Descriptions []RawParagraph  `json:"descriptions"`
}

// PatentDocument is the flat, normalized record produced by the normalizer.
// SearchableText is the field that gets embedded; a document with an empty
// SearchableText is not indexable.
type PatentDocument struct {
	PatentNumber   string `json:"patent_number"`
	Title          string `json:"title"`
	Abstract       string `json:"abstract"`
	Claims         string `json:"claims"`
	Description    string `json:"description"`
	SearchableText string `json:"searchable_text"`
}

// SearchResult is a single ranked hit from a semantic search.
// Score is the cosine similarity (1 - cosine distance) rounded to 4 decimals.
type SearchResult struct {
	PatentNumber string  `json:"patent_number"`
	Title        string  `json:"title"`
	Abstract     string  `json:"abstract"`
	Claims       string  `json:"claims"`
	Description  string  `json:"description"`
	Score        float64 `json:"score"`
}

// CollectionStats is a read-only snapshot of the indexed collection.
type CollectionStats struct {
	TotalDocuments int    `json:"total_documents"`
	CollectionName string `json:"collection_name"`
	Status         string `json:"status"`
}
