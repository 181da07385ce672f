package boxoffice

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gigsheet-cli/internal/core/domain"
	"github.com/custodia-labs/gigsheet-cli/internal/core/ports/driven"
)

// fakeElement implements driven.Element over static text and attributes.
type fakeElement struct {
	texts map[string]string
	attrs map[string]string
}

func (f *fakeElement) Text(_ context.Context, selector string) (string, error) {
	text, ok := f.texts[selector]
	if !ok {
		return "", errors.New("no such element")
	}
	return text, nil
}

func (f *fakeElement) Attribute(_ context.Context, name string) (string, bool) {
	v, ok := f.attrs[name]
	return v, ok
}

// fakeRenderer implements driven.Renderer over canned page state.
type fakeRenderer struct {
	source      string
	elements    []driven.Element
	navigateErr error
	waitErr     error
	evalCalls   int
	closed      bool
}

func (f *fakeRenderer) Navigate(context.Context, string) error { return f.navigateErr }

func (f *fakeRenderer) WaitPresent(context.Context, string, time.Duration) error {
	return f.waitErr
}

func (f *fakeRenderer) Evaluate(context.Context, string) error {
	f.evalCalls++
	return nil
}

func (f *fakeRenderer) PageSource(context.Context) (string, error) { return f.source, nil }

func (f *fakeRenderer) Elements(context.Context, string) ([]driven.Element, error) {
	return f.elements, nil
}

func (f *fakeRenderer) Close() error {
	f.closed = true
	return nil
}

func domRow(title, location, monthDay, timeText, href string) driven.Element {
	texts := map[string]string{}
	if title != "" {
		texts[selEventTitle] = title
	}
	if location != "" {
		texts[selEventLocation] = location
	}
	if monthDay != "" {
		texts[selEventMonthDay] = monthDay
	}
	if timeText != "" {
		texts[selEventTime] = timeText
	}
	return &fakeElement{texts: texts, attrs: map[string]string{"href": href}}
}

func newTestExtractor(renderer driven.Renderer) *Extractor {
	e := NewExtractor(renderer, "https://example.test/listings", time.Second, testLog())
	e.pollDelay = 0
	return e
}

func TestExtractor_CollectWeekEvents_FallsBackToDOM(t *testing.T) {
	start := day(2024, time.August, 19)
	end := day(2024, time.August, 25)

	renderer := &fakeRenderer{
		source: "<html><body>descriptor intentionally absent</body></html>",
		elements: []driven.Element{
			domRow("Night Show", "Troubadour, West Hollywood, CA", "Aug 21", "7:00 PM",
				"/events/night-show-troubadour-08-21-2024-tickets"),
			domRow("", "Somewhere, CA", "Aug 22", "", "/events/x-08-22-2024"), // no title: skipped
			domRow("Bad Date", "Venue, CA", "???", "", ""),                    // unparseable: skipped
			domRow("Out of Week", "Venue, CA", "Sep 30", "", "/events/y-09-30-2024"),
		},
	}

	records, err := newTestExtractor(renderer).CollectWeekEvents(context.Background(), start, end)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Night Show", records[0].Event)
	assert.Equal(t, "Troubadour", records[0].Venue)
	assert.Equal(t, day(2024, time.August, 21), records[0].Date)
	assert.Equal(t, "Night Show", records[0].Artist) // no performer data in the DOM path
	assert.GreaterOrEqual(t, renderer.evalCalls, ScrollSettleRounds)
}

func TestExtractor_CollectWeekEvents_DOMRowWithoutYearInHref(t *testing.T) {
	// Some listing links carry no date slug; the row must still land in
	// the current week instead of being dated year 0 and dropped.
	start, end := domain.CurrentWeekRange(time.Now())
	today := domain.Day(time.Now())

	renderer := &fakeRenderer{
		source: "<html><body>descriptor intentionally absent</body></html>",
		elements: []driven.Element{
			domRow("In-Week Show", "Troubadour, West Hollywood, CA",
				today.Format("Jan 2"), "7:00 PM", "/events/in-week-show-tickets"),
		},
	}

	records, err := newTestExtractor(renderer).CollectWeekEvents(context.Background(), start, end)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "In-Week Show", records[0].Event)
	assert.Equal(t, today, records[0].Date)
}

func TestExtractor_CollectWeekEvents_ViaAPI(t *testing.T) {
	start := day(2024, time.August, 19)
	end := day(2024, time.August, 25)

	pages := [][]listing{
		{concertListing("Show A", "Troubadour", "2024-08-21T19:00:00")},
		nil,
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		page := pages[0]
		pages = pages[1:]
		require.NoError(t, json.NewEncoder(w).Encode(listingResponse{Data: page}))
	}))
	defer server.Close()

	renderer := &fakeRenderer{source: samplePage}
	extractor := newTestExtractor(renderer)
	extractor.api.endpoint = server.URL

	records, err := extractor.CollectWeekEvents(context.Background(), start, end)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Show A", records[0].Event)
}

func TestExtractor_CollectWeekEvents_PageLoadTimeout(t *testing.T) {
	renderer := &fakeRenderer{waitErr: errors.New("deadline exceeded")}

	_, err := newTestExtractor(renderer).CollectWeekEvents(context.Background(),
		day(2024, time.August, 19), day(2024, time.August, 25))

	assert.ErrorIs(t, err, domain.ErrPageLoadTimeout)
}

func TestExtractor_Close(t *testing.T) {
	renderer := &fakeRenderer{}
	extractor := newTestExtractor(renderer)

	require.NoError(t, extractor.Close())
	assert.True(t, renderer.closed)
}
