package index

import (
	"context"
	"regexp"
	"slices"
)

// Metadata is the structured metadata attached to an index document.
type Metadata struct {
	// DocKey is the stable lookup key, the canonical arXiv identifier.
	DocKey string `json:"doc_key"`
	// CollectionIDs is the append-only tag set of collections the paper
	// belongs to. A collection id appears at most once.
	CollectionIDs []string `json:"collection_ids"`
	// PaperTitle is the normalized paper title, when known.
	PaperTitle string `json:"paper_title,omitempty"`
	// Processed marks documents whose content is pipeline output.
	Processed bool `json:"processed"`
}

// WithCollection returns a copy of the metadata with collectionID present in
// the tag set exactly once, and whether the set changed.
func (m Metadata) WithCollection(collectionID string) (Metadata, bool) {
	if slices.Contains(m.CollectionIDs, collectionID) {
		return m, false
	}
	m.CollectionIDs = append(slices.Clone(m.CollectionIDs), collectionID)
	return m, true
}

// Document is an index document as returned by the service.
type Document struct {
	ID       string   `json:"id"`
	Metadata Metadata `json:"metadata"`
}

// CreateRequest describes a new index document.
type CreateRequest struct {
	Content  string
	CustomID string
	Metadata Metadata
}

// PatchRequest describes a partial document update. An empty Content leaves
// the stored content untouched.
type PatchRequest struct {
	Content  string   `json:"content,omitempty"`
	Metadata Metadata `json:"metadata"`
}

// Service is the index service contract consumed by the storage stage.
type Service interface {
	// ListByDocKey returns the documents whose metadata doc_key matches.
	ListByDocKey(ctx context.Context, docKey string) ([]Document, error)

	// CreateDocument creates a new document in the configured container.
	CreateDocument(ctx context.Context, req CreateRequest) error

	// PatchDocument updates content and/or metadata of an existing document.
	PatchDocument(ctx context.Context, id string, patch PatchRequest) error
}

var customIDPattern = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// SanitizeCustomID maps a document key to the restricted custom id charset.
func SanitizeCustomID(key string) string {
	return customIDPattern.ReplaceAllString(key, "_")
}
