package boxoffice

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/custodia-labs/gigsheet-cli/internal/core/domain"
)

// scrub trims surrounding whitespace from scraped text.
func scrub(s string) string {
	return strings.TrimSpace(s)
}

// Layouts the API's datetime_local field is known to use. Anything else
// goes through the lenient parser.
var listingDatetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseListingDatetime converts an API datetime into a calendar date.
func parseListingDatetime(s string) (time.Time, error) {
	for _, layout := range listingDatetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.Day(t), nil
		}
	}

	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, err
	}
	return domain.Day(t), nil
}

// Event links embed the event date as ...-MM-DD-YYYY, optionally followed
// by more slug segments.
var hrefDatePattern = regexp.MustCompile(`-(\d{2})-(\d{2})-(\d{4})(?:-|$)`)

// yearFromHref recovers the event year from a listing link, or "" when the
// href carries no recognisable date.
func yearFromHref(href string) string {
	m := hrefDatePattern.FindStringSubmatch(href)
	if m == nil {
		return ""
	}
	return m[3]
}

// parseEventDate assembles a calendar date from loosely formatted DOM
// fragments: a month-day text ("Aug 21"), an optional year and an optional
// time ("7:00 PM"). Returns false when the pieces do not form a parseable
// date.
func parseEventDate(monthDay, timeText, year string) (time.Time, bool) {
	if strings.TrimSpace(monthDay) == "" {
		return time.Time{}, false
	}

	// A row whose link carries no date slug still belongs to the
	// current season; without the substitute the parser would yield
	// year 0.
	y := strings.TrimSpace(year)
	if y == "" {
		y = strconv.Itoa(time.Now().Year())
	}

	candidate := strings.TrimSpace(monthDay) + ", " + y
	if tt := strings.TrimSpace(timeText); tt != "" {
		candidate += " " + tt
	}

	parsed, err := dateparse.ParseAny(candidate)
	if err != nil {
		return time.Time{}, false
	}
	return domain.Day(parsed), true
}
