package ingestion

import "errors"

var (
	// ErrPaperRepositoryRequired is returned when no paper repository is provided.
	ErrPaperRepositoryRequired = errors.New("paper repository is required")

	// ErrFetcherRequired is returned when no PDF fetcher is provided.
	ErrFetcherRequired = errors.New("fetcher is required")

	// ErrConverterRequired is returned when the AI provider has no converter.
	ErrConverterRequired = errors.New("converter is required")

	// ErrTooManyEmptyChunks is returned when more than half of a document's
	// chunks converted to nothing. The document is discarded rather than
	// stored with large gaps.
	ErrTooManyEmptyChunks = errors.New("too many chunks converted to empty results")
)
