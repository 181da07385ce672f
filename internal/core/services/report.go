package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/gigsheet-cli/internal/core/domain"
	"github.com/custodia-labs/gigsheet-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gigsheet-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gigsheet-cli/internal/logger"
)

// Ensure ReportPipeline implements the interface.
var _ driving.ReportRunner = (*ReportPipeline)(nil)

// ReportPipeline runs the listing-collection pipeline:
// extract, validate, fetch supplemental venues, cache-filter, publish,
// record. Strictly sequential; there is no mid-run cancellation beyond
// context propagation into the I/O steps.
type ReportPipeline struct {
	settings domain.Settings
	sources  driven.ListingSourceFactory
	venues   driven.VenueFetcher
	cache    driven.EventCache
	sink     driven.EventSink
	log      *logger.Log
}

// NewReportPipeline creates a pipeline over the given collaborators.
func NewReportPipeline(
	settings domain.Settings,
	sources driven.ListingSourceFactory,
	venues driven.VenueFetcher,
	cache driven.EventCache,
	sink driven.EventSink,
	log *logger.Log,
) *ReportPipeline {
	return &ReportPipeline{
		settings: settings,
		sources:  sources,
		venues:   venues,
		cache:    cache,
		sink:     sink,
		log:      log,
	}
}

// Run executes one pipeline pass for [start, end].
//
// Supplemental venue records are appended after validation and are not
// re-validated: venue pages are a trusted source shape. When the cache
// filter yields nothing, publish and record are both skipped. Publish
// errors are fatal; there is no partial record-then-retry behaviour.
func (p *ReportPipeline) Run(ctx context.Context, start, end time.Time) (*domain.PipelineResult, error) {
	source, err := p.sources.New(ctx, p.settings.Headless)
	if err != nil {
		return nil, fmt.Errorf("create listing source: %w", err)
	}

	raw, err := source.CollectWeekEvents(ctx, start, end)
	if closeErr := source.Close(); closeErr != nil {
		p.log.Warn("closing listing source: %v", closeErr)
	}
	if err != nil {
		return nil, fmt.Errorf("collect events: %w", err)
	}

	valid, results := FilterValidEvents(raw, start, end)
	var invalid []domain.ValidationResult
	for _, r := range results {
		if !r.Valid {
			invalid = append(invalid, r)
		}
	}

	if len(p.settings.TargetVenues) > 0 {
		p.log.Info("fetching supplemental events for venues: %s",
			strings.Join(p.settings.TargetVenues, ", "))
		supplemental := p.venues.FetchTargetVenues(ctx, p.settings.TargetVenues, start, end)
		if len(supplemental) > 0 {
			p.log.Info("retrieved %d supplemental venue event(s)", len(supplemental))
			valid = append(valid, supplemental...)
		}
	}

	newEvents := p.cache.FilterNew(valid)

	inserted := 0
	if len(newEvents) > 0 {
		for venue, events := range domain.GroupEventsByVenue(newEvents) {
			p.log.Debug("venue %q: %d new event(s)", venue, len(events))
		}
		inserted, err = p.sink.UpsertEvents(ctx, newEvents)
		if err != nil {
			return nil, fmt.Errorf("publish events: %w", err)
		}
		if err := p.cache.Record(newEvents); err != nil {
			return nil, fmt.Errorf("record published events: %w", err)
		}
	} else {
		p.log.Info("no new events to insert after cache filtering")
	}

	return &domain.PipelineResult{
		Fetched:  len(raw),
		Valid:    len(valid),
		New:      len(newEvents),
		Inserted: inserted,
		Invalid:  invalid,
	}, nil
}
