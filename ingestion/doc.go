// Package ingestion orchestrates the paper processing pipeline: fetch the
// source PDF, convert its text to markdown chunk by chunk, densify the
// markdown section by section, and persist the result with an idempotent
// collection tag in the search index.
//
// The record status is the single source of truth for duplicate detection:
// Submit inspects it and either starts a run, reports one in progress, or
// performs only the tagging side effect for already-complete papers. Stage
// fan-outs run on bounded worker pools and reassemble results in input order.
package ingestion
