package api

type SummaryRow struct {
	CategoryCode  string  `json:"category_code"`
	CategoryLabel string  `json:"category_label"`
	RawTotal      float64 `json:"raw_total"`
	AdjustedTotal float64 `json:"adjusted_total"`
}

type Coverage struct {
	Present  []int `json:"present"`
	Missing  []int `json:"missing"`
	Complete bool  `json:"complete"`
}

type Session struct {
	ID       string       `json:"id"`
	Year     int          `json:"year"`
	Coverage Coverage     `json:"coverage"`
	Summary  []SummaryRow `json:"summary"`
}

// SummaryEdit carries one adjusted-total edit; code and label identify
// the row, raw totals are not editable.
type SummaryEdit struct {
	CategoryCode  string  `json:"category_code"`
	CategoryLabel string  `json:"category_label"`
	AdjustedTotal float64 `json:"adjusted_total"`
}

type SummaryEditRequest struct {
	Rows []SummaryEdit `json:"rows"`
}

type ReclassificationRequest struct {
	Amount float64 `json:"amount"`
}

type ReportResponse struct {
	Report string `json:"report"`
}

type Error struct {
	Error string `json:"error"`
}
