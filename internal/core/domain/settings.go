package domain

import "time"

// Default values for optional settings.
const (
	DefaultSourceURL      = "https://www.boxofficeticketsales.com/los-angeles/ca?type=Concerts"
	DefaultCacheFile      = "data/events_cache.json"
	DefaultRequestTimeout = 20 * time.Second
)

// DefaultTargetVenues are the venues fetched supplementally when
// TARGET_VENUES is not set.
var DefaultTargetVenues = []string{"Troubadour", "Exchange LA", "SoFi Stadium"}

// Settings holds the resolved runtime configuration.
// Required fields are checked by the loader; everything else carries a
// default.
type Settings struct {
	// SourceURL is the listing page scraped by the extractor.
	SourceURL string

	// SpreadsheetID identifies the destination spreadsheet. Required.
	SpreadsheetID string

	// ServiceAccountFile is the path to the Google service-account
	// credentials JSON. Required.
	ServiceAccountFile string

	// CacheFile is the path of the persistent event cache.
	CacheFile string

	// Headless controls whether the browser renders without a window.
	Headless bool

	// RequestTimeout bounds each page load and API request.
	RequestTimeout time.Duration

	// TargetVenues lists venues fetched via their own pages in addition
	// to the main listing page. Empty disables the supplemental fetch.
	TargetVenues []string
}
