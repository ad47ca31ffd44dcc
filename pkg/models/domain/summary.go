package domain

// SummaryRow is the annual total for one (category code, category label)
// pair. RawTotal is the audited sum of uploaded amounts and is never
// user-editable; AdjustedTotal starts equal to RawTotal and carries the
// treasurer's year-end corrections.
type SummaryRow struct {
	CategoryCode  string
	CategoryLabel string
	RawTotal      float64
	AdjustedTotal float64
}

// Summary is the annual roll-up, sorted ascending by the numeric value
// of the category code.
type Summary struct {
	Rows []SummaryRow
}

// Clone returns a deep copy, so edits never leak back into the base
// summary a session recomputes from.
func (s Summary) Clone() Summary {
	rows := make([]SummaryRow, len(s.Rows))
	copy(rows, s.Rows)
	return Summary{Rows: rows}
}

// CodeRawTotal sums RawTotal over every row carrying the given code.
// Duplicate-label rows for one code each contribute.
func (s Summary) CodeRawTotal(code string) float64 {
	var total float64
	for _, row := range s.Rows {
		if row.CategoryCode == code {
			total += row.RawTotal
		}
	}
	return total
}
