package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/gigsheet-cli/internal/core/domain"
)

// ReportRunner executes one listing-collection run for a date window.
type ReportRunner interface {
	// Run renders, extracts, validates, cache-filters and publishes
	// records for [start, end]. A nil error means the run completed,
	// including the zero-new-events case.
	Run(ctx context.Context, start, end time.Time) (*domain.PipelineResult, error)
}

// SheetMaintainer performs maintenance on rows already published to the
// destination.
type SheetMaintainer interface {
	// Normalize re-sanitizes every destination row in place and returns
	// how many data rows were rewritten.
	Normalize(ctx context.Context) (int, error)
}
