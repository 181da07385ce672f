package boxoffice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/gigsheet-cli/internal/core/domain"
	"github.com/custodia-labs/gigsheet-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gigsheet-cli/internal/logger"
)

// CSS selectors for the rendered listing markup. Listing rows are anchor
// elements, so the row handle itself carries the event link href.
const (
	selEventRow      = "a.event-row"
	selEventTitle    = ".event-title"
	selEventLocation = ".event-location"
	selEventMonthDay = ".event-date .month-day"
	selEventTime     = ".event-date .time"
)

const (
	// ScrollSettleRounds is how many consecutive unchanged row counts
	// end the infinite-scroll loop. Bounds total wait time while
	// tolerating slow incremental loads.
	ScrollSettleRounds = 15

	// scrollPollDelay is the pause between scroll triggers.
	scrollPollDelay = 1500 * time.Millisecond

	scrollScript = "window.scrollTo(0, document.body.scrollHeight);"
)

// Strategy stages the primary extraction path can fail at.
const (
	stageDescriptor = "descriptor"
	stageRequest    = "request"
)

// fallbackReason records why the primary API strategy was abandoned in
// favour of DOM scraping. Keeping the stage explicit makes failure
// categories enumerable and testable.
type fallbackReason struct {
	Stage string
	Err   error
}

func (r *fallbackReason) Error() string {
	return fmt.Sprintf("%s stage: %v", r.Stage, r.Err)
}

func (r *fallbackReason) Unwrap() error { return r.Err }

// Ensure Extractor implements the interface.
var _ driven.ListingSource = (*Extractor)(nil)

// Extractor collects a week of concert listings from the main listing
// page. It owns the renderer session it was constructed with.
type Extractor struct {
	renderer  driven.Renderer
	api       *apiClient
	sourceURL string
	timeout   time.Duration
	pollDelay time.Duration
	log       *logger.Log
}

// NewExtractor creates an extractor over an open renderer session.
func NewExtractor(renderer driven.Renderer, sourceURL string, timeout time.Duration, log *logger.Log) *Extractor {
	return &Extractor{
		renderer:  renderer,
		api:       newAPIClient(timeout, log),
		sourceURL: sourceURL,
		timeout:   timeout,
		pollDelay: scrollPollDelay,
		log:       log,
	}
}

// Close releases the renderer session.
func (e *Extractor) Close() error {
	return e.renderer.Close()
}

// CollectWeekEvents returns every listing dated inside [start, end].
// Once the page has rendered, extraction cannot fail: a broken primary
// strategy is logged and answered with the DOM fallback, which recovers
// per-record problems by omission.
func (e *Extractor) CollectWeekEvents(ctx context.Context, start, end time.Time) ([]domain.EventRecord, error) {
	if err := e.loadPage(ctx); err != nil {
		return nil, err
	}

	records, reason := e.collectViaAPI(ctx, start, end)
	if reason != nil {
		e.log.Warn("API pagination failed at %s stage, falling back to DOM parsing: %v", reason.Stage, reason.Err)
		records = e.collectFromDOM(ctx, start, end)
		e.log.Info("collected %d event(s) for the target week via DOM fallback", len(records))
		return records, nil
	}

	e.log.Info("collected %d event(s) for the target week via API", len(records))
	return records, nil
}

// loadPage navigates to the listing page, waits for the first row and
// drives the infinite-scroll loading to exhaustion.
func (e *Extractor) loadPage(ctx context.Context) error {
	e.log.Info("navigating to %s", e.sourceURL)

	if err := e.renderer.Navigate(ctx, e.sourceURL); err != nil {
		return fmt.Errorf("navigate: %w", err)
	}
	if err := e.renderer.WaitPresent(ctx, selEventRow, e.timeout); err != nil {
		return fmt.Errorf("%w: no %q element after %s", domain.ErrPageLoadTimeout, selEventRow, e.timeout)
	}
	return e.loadAllEvents(ctx)
}

// loadAllEvents scrolls to the bottom repeatedly until the row count has
// stopped growing for ScrollSettleRounds consecutive samples.
func (e *Extractor) loadAllEvents(ctx context.Context) error {
	unchanged := 0
	previous := 0

	for unchanged < ScrollSettleRounds {
		if err := e.renderer.Evaluate(ctx, scrollScript); err != nil {
			return fmt.Errorf("scroll page: %w", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(e.pollDelay):
		}

		rows, err := e.renderer.Elements(ctx, selEventRow)
		if err != nil {
			return fmt.Errorf("count listing rows: %w", err)
		}

		if len(rows) == previous {
			unchanged++
		} else {
			previous = len(rows)
			unchanged = 0
		}
	}
	return nil
}

// collectViaAPI is the primary strategy: replay the page's embedded
// request descriptor against the listings API.
func (e *Extractor) collectViaAPI(ctx context.Context, start, end time.Time) ([]domain.EventRecord, *fallbackReason) {
	source, err := e.renderer.PageSource(ctx)
	if err != nil {
		return nil, &fallbackReason{Stage: stageDescriptor, Err: err}
	}

	desc, err := extractDescriptor(source)
	if err != nil {
		return nil, &fallbackReason{Stage: stageDescriptor, Err: err}
	}

	listings, err := e.api.fetchListings(ctx, desc)
	if err != nil {
		return nil, &fallbackReason{Stage: stageRequest, Err: err}
	}

	return buildRecords(listings, start, end, e.log), nil
}

// collectFromDOM is the fallback strategy: read whatever rows are rendered.
// Records missing a title or a parseable date are skipped silently.
func (e *Extractor) collectFromDOM(ctx context.Context, start, end time.Time) []domain.EventRecord {
	rows, err := e.renderer.Elements(ctx, selEventRow)
	if err != nil {
		e.log.Warn("could not read listing rows from DOM: %v", err)
		return nil
	}

	var records []domain.EventRecord
	for _, row := range rows {
		title := e.safeText(ctx, row, selEventTitle)
		if title == "" {
			continue
		}

		venue := ""
		if location := e.safeText(ctx, row, selEventLocation); location != "" {
			venue = strings.TrimSpace(strings.SplitN(location, ",", 2)[0])
		}

		monthDay := e.safeText(ctx, row, selEventMonthDay)
		timeText := e.safeText(ctx, row, selEventTime)

		year := ""
		if href, ok := row.Attribute(ctx, "href"); ok {
			year = yearFromHref(href)
		}

		eventDate, ok := parseEventDate(monthDay, timeText, year)
		if !ok {
			continue
		}
		if eventDate.Before(start) || eventDate.After(end) {
			continue
		}

		records = append(records, domain.EventRecord{
			Venue:  venue,
			Event:  title,
			Date:   eventDate,
			Artist: title,
		})
	}

	return records
}

// safeText reads a descendant's text, mapping any lookup failure to "".
func (e *Extractor) safeText(ctx context.Context, el driven.Element, selector string) string {
	text, err := el.Text(ctx, selector)
	if err != nil {
		return ""
	}
	return scrub(text)
}
