package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrMissingConfig indicates a required setting is absent.
	// No partial run is attempted when configuration is incomplete.
	ErrMissingConfig = errors.New("missing required configuration")

	// ErrPageLoadTimeout indicates the listing page did not render any
	// event rows within the configured timeout.
	ErrPageLoadTimeout = errors.New("page load timed out")

	// ErrDescriptorNotFound indicates the embedded request descriptor
	// could not be located in the page source.
	ErrDescriptorNotFound = errors.New("request descriptor not found in page source")

	// ErrInvalidVenueName indicates a venue name that cannot be turned
	// into a URL slug.
	ErrInvalidVenueName = errors.New("invalid venue name")

	// ErrWorksheetNotFound indicates the destination worksheet does not
	// exist. This is a user-visible configuration error, not retried.
	ErrWorksheetNotFound = errors.New("destination worksheet not found")
)
