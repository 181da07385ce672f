package services

import (
	"strings"
	"time"

	"github.com/custodia-labs/gigsheet-cli/internal/core/domain"
)

// errDateOutsideRange is the validation message for a record dated outside
// the requested window.
const errDateOutsideRange = "Event date is outside the requested range."

// ValidateEvent checks one record against the required-field and
// date-window rules. Every violated rule is collected; validation never
// short-circuits.
func ValidateEvent(event domain.EventRecord, start, end time.Time) domain.ValidationResult {
	var errs []string

	for _, field := range []struct {
		name  string
		value string
	}{
		{"Venue", event.Venue},
		{"Event", event.Event},
		{"Artist", event.Artist},
	} {
		if strings.TrimSpace(field.value) == "" {
			errs = append(errs, field.name+" is required.")
		}
	}

	if event.Date.Before(start) || event.Date.After(end) {
		errs = append(errs, errDateOutsideRange)
	}

	return domain.ValidationResult{
		Event:  event,
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

// FilterValidEvents partitions events into the valid subsequence
// (order-preserving) and the full per-record results for every input,
// valid or not. The results support audit logging of every drop reason.
func FilterValidEvents(events []domain.EventRecord, start, end time.Time) ([]domain.EventRecord, []domain.ValidationResult) {
	var valid []domain.EventRecord
	results := make([]domain.ValidationResult, 0, len(events))

	for _, event := range events {
		result := ValidateEvent(event, start, end)
		results = append(results, result)
		if result.Valid {
			valid = append(valid, event)
		}
	}

	return valid, results
}
