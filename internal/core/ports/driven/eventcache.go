package driven

import "github.com/custodia-labs/gigsheet-cli/internal/core/domain"

// CacheOutcome describes how the persistent cache store came up.
// Surfacing the outcome makes recovery from a corrupt store observable
// instead of a silent reset.
type CacheOutcome string

const (
	// CacheLoaded means an existing store was read successfully.
	CacheLoaded CacheOutcome = "loaded"

	// CacheFresh means no store existed and an empty one was created.
	CacheFresh CacheOutcome = "fresh"

	// CacheRecovered means the store was unreadable and was reset to
	// empty. Previously recorded keys are lost.
	CacheRecovered CacheOutcome = "recovered"
)

// EventCache is the durable mapping of already-delivered record keys to
// their last-seen date. Once a key is present it is never removed; presence
// alone signals "already delivered".
//
// The cache is single-writer within one process invocation. Concurrent
// pipeline runs against the same backing store are not safe and must be
// serialized by the caller.
type EventCache interface {
	// FilterNew returns the subsequence of events whose key is absent
	// from the store. Pure and order-preserving; calling it repeatedly
	// without an intervening Record yields identical results.
	FilterNew(events []domain.EventRecord) []domain.EventRecord

	// Record upserts each event's key with its ISO date, then rewrites
	// the backing store once.
	Record(events []domain.EventRecord) error
}
