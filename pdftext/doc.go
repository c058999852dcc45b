// Package pdftext extracts per-page plain text from PDF documents and cleans
// it for downstream conversion: repeated page headers/footers, the table of
// contents, acknowledgements and everything from the references section on
// are stripped before the text is chunked and sent to the conversion model.
package pdftext
