package storage

import (
	"context"

	"github.com/constellar/paperflow/core"
)

// PaperRepository provides operations for managing paper ingestion records.
// The canonical arXiv identifier is the unique key: exactly one record exists
// per identifier.
type PaperRepository interface {
	// GetPaper retrieves the record for the given arXiv identifier.
	// Returns ErrNotFound if no record exists.
	GetPaper(ctx context.Context, arxivID string) (*core.PaperRecord, error)

	// CreatePaper stores a new record. Sets CreatedAt and UpdatedAt.
	// Returns ErrDuplicateKey if a record already exists for the identifier.
	CreatePaper(ctx context.Context, record *core.PaperRecord) error

	// UpdatePaper replaces an existing record, preserving CreatedAt and
	// bumping UpdatedAt. Returns ErrNotFound if the record doesn't exist.
	UpdatePaper(ctx context.Context, record *core.PaperRecord) error

	// SetStatus updates only the status and error message of an existing
	// record. An empty errorMessage clears any previous message.
	// Returns ErrNotFound if the record doesn't exist.
	SetStatus(ctx context.Context, arxivID string, status core.Status, errorMessage string) error

	// ListPapers returns all records ordered by arXiv identifier.
	ListPapers(ctx context.Context) ([]*core.PaperRecord, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
