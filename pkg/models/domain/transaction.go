package domain

// Transaction is one financial entry from a monthly treasurer export.
// Rows are immutable once normalized; the merged row set is the audit
// trail the report itemizations are built from.
type Transaction struct {
	Year          int
	Month         int
	Amount        float64
	CategoryCode  string
	CategoryLabel string

	// Optional descriptive fields, defaulted to zero values at ingest.
	Date                 string // free text, display/sort only
	Description          string
	ItemizationLabel     string
	MemberEventLabel     string
	EventLocation        string
	EventPurpose         string
	SponsorName          string
	PotentialSponsorship bool
	NeedsInvestigation   bool
}
