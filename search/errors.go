package search

import "errors"

var (
	// ErrPaperRepositoryRequired is returned when no paper repository is provided.
	ErrPaperRepositoryRequired = errors.New("paper repository is required")

	// ErrEmptyQuery is returned when the search query has no usable words.
	ErrEmptyQuery = errors.New("query contains no searchable words")
)
