package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/custodia-labs/gigsheet-cli/internal/core/domain"
	"github.com/custodia-labs/gigsheet-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gigsheet-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gigsheet-cli/internal/logger"
)

// Ensure SheetNormalizer implements the interface.
var _ driving.SheetMaintainer = (*SheetNormalizer)(nil)

// SheetNormalizer re-sanitizes rows already published to the destination:
// HTML entities unescaped, cells trimmed, the date column renormalized to
// ISO format and every row padded or cut to the header width.
type SheetNormalizer struct {
	sink driven.EventSink
	log  *logger.Log
}

// NewSheetNormalizer creates a normalizer over the given sink.
func NewSheetNormalizer(sink driven.EventSink, log *logger.Log) *SheetNormalizer {
	return &SheetNormalizer{sink: sink, log: log}
}

// Normalize rewrites every data row in place and returns how many rows
// were rewritten. An empty destination just gets its header installed.
func (n *SheetNormalizer) Normalize(ctx context.Context) (int, error) {
	rows, err := n.sink.FetchRows(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch rows: %w", err)
	}

	if len(rows) == 0 {
		if err := n.sink.EnsureHeader(ctx); err != nil {
			return 0, fmt.Errorf("ensure header: %w", err)
		}
		return 0, nil
	}

	dataRows := rows[1:]
	normalized := make([][]string, 0, len(dataRows)+1)
	normalized = append(normalized, domain.SheetHeader)
	for _, row := range dataRows {
		normalized = append(normalized, n.sanitizeRow(row))
	}

	if err := n.sink.OverwriteRows(ctx, normalized); err != nil {
		return 0, fmt.Errorf("overwrite rows: %w", err)
	}

	n.log.Info("normalized %d existing row(s) at the destination", len(dataRows))
	return len(dataRows), nil
}

// sanitizeRow pads or cuts the row to the header width, unescapes and
// trims each cell and renormalizes the date column. A date that resists
// parsing is logged and left as-is.
func (n *SheetNormalizer) sanitizeRow(row []string) []string {
	sanitized := make([]string, len(domain.SheetHeader))
	for i := range sanitized {
		if i < len(row) {
			sanitized[i] = strings.TrimSpace(html.UnescapeString(row[i]))
		}
	}

	// Column 2 is the date per domain.SheetHeader.
	if dateValue := sanitized[2]; dateValue != "" {
		parsed, err := dateparse.ParseAny(dateValue)
		if err != nil {
			n.log.Warn("could not normalize date %q: %v", dateValue, err)
		} else {
			sanitized[2] = parsed.Format(domain.DateLayout)
		}
	}

	return sanitized
}
