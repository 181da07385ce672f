package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/gigsheet-cli/internal/core/domain"
)

// ListingSource produces candidate event records for a date window.
// Implementations own an underlying renderer session and release it on
// Close.
type ListingSource interface {
	// CollectWeekEvents returns every listing found for [start, end].
	// A returned error means the source page never rendered; extraction
	// failures past that point are recovered internally (the source
	// falls back to a secondary strategy and surfaces omissions only).
	CollectWeekEvents(ctx context.Context, start, end time.Time) ([]domain.EventRecord, error)

	// Close releases the underlying renderer session.
	Close() error
}

// ListingSourceFactory creates listing sources. One source serves one
// pipeline run.
type ListingSourceFactory interface {
	New(ctx context.Context, headless bool) (ListingSource, error)
}

// VenueFetcher fetches events for explicitly named venues, independent of
// the main listing source.
type VenueFetcher interface {
	// FetchTargetVenues accumulates records across venues. A failing
	// venue is logged and skipped; it never aborts the remaining
	// venues. The result is not deduplicated - cross-source dedup is
	// the cache's and sink's job.
	FetchTargetVenues(ctx context.Context, venues []string, start, end time.Time) []domain.EventRecord
}
