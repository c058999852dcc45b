// Package fetch downloads paper PDFs from arXiv with an on-disk cache keyed
// by the canonical identifier, so resubmissions and retries don't re-download
// the source document.
package fetch
