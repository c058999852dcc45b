// Package index talks to the secondary search-index service that makes
// densified papers discoverable. Documents are keyed by a stable doc_key and
// carry a collection id tag set in their metadata; tagging is idempotent so
// a paper can belong to many collections without duplication.
package index
