package boxoffice

import (
	"html"
	"strings"
	"time"

	"github.com/custodia-labs/gigsheet-cli/internal/core/domain"
	"github.com/custodia-labs/gigsheet-cli/internal/logger"
)

// categoryConcerts is the only listing category kept; everything else
// (sports, theater) is dropped, case-insensitively.
const categoryConcerts = "concerts"

// buildRecords converts raw listings into event records: category and date
// window filters, HTML unescaping, artist defaulting and intra-run dedup by
// canonical key. First occurrence of a key wins.
func buildRecords(listings []listing, start, end time.Time, log *logger.Log) []domain.EventRecord {
	var records []domain.EventRecord
	seen := make(map[string]struct{})

	for _, l := range listings {
		if !strings.EqualFold(l.Type, categoryConcerts) {
			continue
		}
		if l.DatetimeLocal == "" {
			continue
		}

		eventDate, err := parseListingDatetime(l.DatetimeLocal)
		if err != nil {
			log.Warn("could not parse datetime %q: %v", l.DatetimeLocal, err)
			continue
		}
		if eventDate.Before(start) || eventDate.After(end) {
			continue
		}

		venue := scrub(html.UnescapeString(l.Venue.Name))
		title := l.Title
		if title == "" {
			title = l.Event
		}
		title = scrub(html.UnescapeString(title))

		artist := title
		if len(l.Performers) > 0 && l.Performers[0].Name != "" {
			artist = scrub(html.UnescapeString(l.Performers[0].Name))
		}

		record := domain.EventRecord{
			Venue:  venue,
			Event:  title,
			Date:   eventDate,
			Artist: artist,
		}

		key := record.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		records = append(records, record)
	}

	return records
}
