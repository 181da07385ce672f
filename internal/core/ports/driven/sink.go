package driven

import (
	"context"

	"github.com/custodia-labs/gigsheet-cli/internal/core/domain"
)

// EventSink is the append-only destination for published records.
// Sink failures are fatal to a run: there is no retry and no partial
// record-then-republish behaviour.
type EventSink interface {
	// EnsureHeader makes the destination's first row match
	// domain.SheetHeader.
	EnsureHeader(ctx context.Context) error

	// FetchRows returns every row currently at the destination,
	// including the header row.
	FetchRows(ctx context.Context) ([][]string, error)

	// OverwriteRows replaces the destination's full contents.
	OverwriteRows(ctx context.Context, rows [][]string) error

	// UpsertEvents appends the rows whose canonical key is not already
	// present at the destination and returns how many were appended.
	UpsertEvents(ctx context.Context, events []domain.EventRecord) (int, error)
}
