package domain

// ValidationResult wraps a record with its validity outcome.
// One result is produced per record per pipeline run and never mutated.
type ValidationResult struct {
	// Event is the record that was validated.
	Event EventRecord

	// Valid is true when Errors is empty.
	Valid bool

	// Errors lists every violated rule, in check order. Validation does
	// not short-circuit so downstream logging can show all violations
	// at once.
	Errors []string
}
