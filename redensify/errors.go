package redensify

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when retry is configured with a
	// non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than 0")

	// ErrPaperRepositoryRequired is returned when no paper repository is provided.
	ErrPaperRepositoryRequired = errors.New("paper repository is required")

	// ErrDensifierRequired is returned when no densifier is provided.
	ErrDensifierRequired = errors.New("densifier is required")
)
