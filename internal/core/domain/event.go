package domain

import (
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format used everywhere a date is
// rendered as text: record keys, cache values and sheet rows.
const DateLayout = "2006-01-02"

// SheetHeader is the fixed header row of the destination sheet.
var SheetHeader = []string{"Venue", "Event", "Date", "Artist"}

// EventRecord represents one concert listing after extraction.
// Dates are day-granular; the time component is always UTC midnight.
// Records are immutable once constructed.
type EventRecord struct {
	// Venue is the venue name as shown by the source.
	Venue string

	// Event is the listing title.
	Event string

	// Date is the calendar date of the event.
	Date time.Time

	// Artist is the headline performer. Defaults to the title when the
	// source exposes no structured performer data.
	Artist string
}

// Key returns the canonical dedup identity of the record: case-folded,
// whitespace-trimmed venue and title joined with the ISO date.
// Two records describing the same real-world listing fold to the same key
// regardless of casing or surrounding whitespace.
//
// The same key is applied at every dedup boundary: within a single
// extraction pass, against the persistent cache, and against rows already
// present in the sheet.
func (e EventRecord) Key() string {
	return strings.Join([]string{
		foldKeyPart(e.Venue),
		foldKeyPart(e.Event),
		e.Date.Format(DateLayout),
	}, "|")
}

// Row returns the sheet row for the record, ordered per SheetHeader.
func (e EventRecord) Row() []string {
	return []string{e.Venue, e.Event, e.Date.Format(DateLayout), e.Artist}
}

// RowKey folds already-rendered row fields into the same canonical key
// shape as EventRecord.Key. date must be an ISO calendar date string.
func RowKey(venue, event, date string) string {
	return strings.Join([]string{
		foldKeyPart(venue),
		foldKeyPart(event),
		strings.TrimSpace(date),
	}, "|")
}

func foldKeyPart(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Day truncates t to its calendar date in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GroupEventsByVenue buckets records by their venue name, preserving input
// order within each bucket. Used when formatting per-venue report output.
func GroupEventsByVenue(events []EventRecord) map[string][]EventRecord {
	grouped := make(map[string][]EventRecord)
	for _, e := range events {
		grouped[e.Venue] = append(grouped[e.Venue], e)
	}
	return grouped
}
