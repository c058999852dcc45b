// Package redensify rebuilds the densified markdown of stored papers,
// typically after switching to a better densification model. It walks all
// complete records, re-compresses their converted markdown section by
// section with retries, and reports progress as it goes.
package redensify
