package fetch

import "errors"

var (
	// ErrNoPDFURL indicates no canonical PDF URL could be derived from the input.
	ErrNoPDFURL = errors.New("cannot derive pdf url")

	// ErrBadStatus indicates the download returned a non-success HTTP status.
	ErrBadStatus = errors.New("unexpected response status")
)
