package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEventRecord_Key(t *testing.T) {
	base := EventRecord{
		Venue:  "Troubadour",
		Event:  "Show A",
		Date:   date(2024, time.May, 1),
		Artist: "Band",
	}

	t.Run("folds casing and whitespace", func(t *testing.T) {
		noisy := EventRecord{
			Venue:  "  TROUBADOUR ",
			Event:  "show a",
			Date:   date(2024, time.May, 1),
			Artist: "Someone Else",
		}
		assert.Equal(t, base.Key(), noisy.Key())
	})

	t.Run("pipe-joined serialization", func(t *testing.T) {
		assert.Equal(t, "troubadour|show a|2024-05-01", base.Key())
	})

	t.Run("different dates differ", func(t *testing.T) {
		other := base
		other.Date = date(2024, time.May, 2)
		assert.NotEqual(t, base.Key(), other.Key())
	})
}

func TestEventRecord_Row(t *testing.T) {
	e := EventRecord{
		Venue:  "Exchange LA",
		Event:  "Night Shift",
		Date:   date(2024, time.August, 21),
		Artist: "DJ Example",
	}

	assert.Equal(t, []string{"Exchange LA", "Night Shift", "2024-08-21", "DJ Example"}, e.Row())
}

func TestGroupEventsByVenue(t *testing.T) {
	events := []EventRecord{
		{Venue: "Troubadour", Event: "A", Date: date(2024, time.May, 1)},
		{Venue: "Exchange LA", Event: "B", Date: date(2024, time.May, 2)},
		{Venue: "Troubadour", Event: "C", Date: date(2024, time.May, 3)},
	}

	grouped := GroupEventsByVenue(events)

	assert.Len(t, grouped, 2)
	assert.Equal(t, "A", grouped["Troubadour"][0].Event)
	assert.Equal(t, "C", grouped["Troubadour"][1].Event)
	assert.Len(t, grouped["Exchange LA"], 1)
}
