// Package pending provides a concurrency-safe table of in-flight entries
// keyed by id, with age-based eviction.
//
// Entries are kept in insertion order, so the background sweep only touches
// the expired prefix of the table. Removal by key is the single point at
// which ownership of an entry leaves the table: whichever caller gets the
// value back from Remove (or the expiry callback) owns it, and nobody else
// will see it again.
package pending
