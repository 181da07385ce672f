package domain

// PipelineResult summarises one report run. Produced once per run and
// returned to the caller; never persisted.
type PipelineResult struct {
	// Fetched is the number of records the extractor produced.
	Fetched int

	// Valid is the number of records that passed validation, plus any
	// supplemental venue records appended after validation.
	Valid int

	// New is the number of records the cache had not seen before.
	New int

	// Inserted is the number of rows actually appended to the sheet.
	Inserted int

	// Invalid carries the full validation result for every rejected
	// record, for audit logging.
	Invalid []ValidationResult
}
