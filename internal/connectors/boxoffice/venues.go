package boxoffice

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/gigsheet-cli/internal/core/domain"
	"github.com/custodia-labs/gigsheet-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gigsheet-cli/internal/logger"
)

const venueBaseURL = "https://www.boxofficeticketsales.com"

// Venue pages are small but still remote; pace requests conservatively.
const (
	venueRequestsPerSecond = 2.0
	venueBurst             = 2
)

// venueSlugOverrides maps venue names whose naive slug would not match the
// site's URL scheme.
var venueSlugOverrides = map[string]string{
	"Exchange LA":  "exchange-la",
	"SoFi Stadium": "sofi-stadium",
	"Troubadour":   "troubadour",
}

var (
	slugStrip    = regexp.MustCompile(`[()'’]`)
	slugCollapse = regexp.MustCompile(`[^a-z0-9]+`)
)

// slugify derives the venue page URL slug: override table first, then
// lowercase, "&" to "and", punctuation stripped and non-alphanumeric runs
// collapsed to single hyphens.
func slugify(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: name is required to derive slug", domain.ErrInvalidVenueName)
	}

	if slug, ok := venueSlugOverrides[name]; ok {
		return slug, nil
	}

	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, "&", " and ")
	slug = slugStrip.ReplaceAllString(slug, "")
	slug = slugCollapse.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	return slug, nil
}

// Ensure VenueFetcher implements the interface.
var _ driven.VenueFetcher = (*VenueFetcher)(nil)

// VenueFetcher fetches events for named venues via their listing pages.
// Each page embeds the same request descriptor as the main page; venue
// pages are assumed small, so a single page is read and no pagination is
// attempted.
type VenueFetcher struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter
	log     *logger.Log
}

// NewVenueFetcher creates a fetcher with the given per-request timeout.
func NewVenueFetcher(timeout time.Duration, log *logger.Log) *VenueFetcher {
	return &VenueFetcher{
		http:    &http.Client{Timeout: timeout},
		baseURL: venueBaseURL,
		limiter: rate.NewLimiter(venueRequestsPerSecond, venueBurst),
		log:     log,
	}
}

// FetchTargetVenues accumulates records across venues, sequentially. A
// failing venue is logged and skipped; the remaining venues continue. The
// result is intentionally not deduplicated.
func (f *VenueFetcher) FetchTargetVenues(ctx context.Context, venues []string, start, end time.Time) []domain.EventRecord {
	var collected []domain.EventRecord
	for _, venue := range venues {
		events, err := f.FetchVenueEvents(ctx, venue, start, end)
		if err != nil {
			f.log.Error("failed to fetch venue %s: %v", venue, err)
			continue
		}
		collected = append(collected, events...)
	}
	return collected
}

// FetchVenueEvents fetches one venue's page and returns its concert
// listings inside [start, end].
func (f *VenueFetcher) FetchVenueEvents(ctx context.Context, venueName string, start, end time.Time) ([]domain.EventRecord, error) {
	slug, err := slugify(venueName)
	if err != nil {
		return nil, err
	}

	url := f.baseURL + "/venues/" + slug
	f.log.Debug("fetching venue page for %s (%s)", venueName, url)

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create venue request: %w", err)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch venue page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("venue page request failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read venue page: %w", err)
	}

	desc, err := extractDescriptor(string(body))
	if err != nil {
		return nil, err
	}

	var events []domain.EventRecord
	for _, entry := range desc.Data.Data {
		if !strings.EqualFold(entry.Type, categoryConcerts) {
			continue
		}
		if entry.DatetimeLocal == "" {
			continue
		}

		eventDate, err := parseListingDatetime(entry.DatetimeLocal)
		if err != nil {
			f.log.Warn("could not parse datetime %q for venue %s: %v", entry.DatetimeLocal, venueName, err)
			continue
		}
		if eventDate.Before(start) || eventDate.After(end) {
			continue
		}

		venue := entry.Venue.Name
		if venue == "" {
			venue = venueName
		}
		title := entry.Title
		if title == "" {
			title = entry.Event
		}
		if title == "" {
			title = venueName
		}

		events = append(events, domain.EventRecord{
			Venue:  venue,
			Event:  title,
			Date:   eventDate,
			Artist: title,
		})
	}

	f.log.Info("fetched %d event(s) for venue %s", len(events), venueName)
	return events, nil
}
