package ingest

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/faoa-tools/annual-report/pkg/models/domain"
)

// Column names as exported by the FAOA Monthly Treasurer Tool.
const (
	ColYear                 = "Year"
	ColMonth                = "Month"
	ColAmount               = "Amount"
	ColCategoryCode         = "IRS Category Code"
	ColCategoryLabel        = "IRS Category Label"
	ColDate                 = "Date"
	ColDescription          = "Description"
	ColItemizationLabel     = "Itemization Label"
	ColMemberEventLabel     = "Member/Event Label"
	ColEventLocation        = "Event Location"
	ColEventPurpose         = "Event Purpose"
	ColSponsorName          = "Sponsor Name"
	ColPotentialSponsorship = "Potential Sponsorship"
	ColNeedsInvestigation   = "Needs Further Investigation"
)

// RequiredColumns is the hard-required header set; uploads missing any
// of these are rejected with a SchemaError.
var RequiredColumns = []string{
	ColYear,
	ColMonth,
	ColAmount,
	ColCategoryCode,
	ColCategoryLabel,
}

var truthyTokens = map[string]bool{
	"true": true,
	"1":    true,
	"yes":  true,
	"y":    true,
}

// Normalize validates one decoded dataset and coerces it into typed
// transaction rows. The input dataset is not modified. Optional columns
// absent from the upload take their documented defaults (empty string,
// false). Numeric coercion failures are reported per field, not per row.
func Normalize(ds RawDataset) ([]domain.Transaction, error) {
	present := make(map[string]bool, len(ds.Columns))
	for _, col := range ds.Columns {
		present[col] = true
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &domain.SchemaError{Missing: missing}
	}

	// Year and Month must be whole numbers; "2024.0" is a valid spelling
	// of 2024, "2024.5" is not a year.
	for _, col := range []string{ColYear, ColMonth} {
		for _, row := range ds.Rows {
			f, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
			if err != nil || f != math.Trunc(f) {
				return nil, domain.NewValidationError("some rows have invalid %s values", col)
			}
		}
	}
	for _, row := range ds.Rows {
		if _, err := strconv.ParseFloat(strings.TrimSpace(row[ColAmount]), 64); err != nil {
			return nil, domain.NewValidationError("some rows have invalid %s values", ColAmount)
		}
	}

	rows := make([]domain.Transaction, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		rows = append(rows, domain.Transaction{
			Year:          parseInt(row[ColYear]),
			Month:         parseInt(row[ColMonth]),
			Amount:        parseFloat(row[ColAmount]),
			CategoryCode:  text(row, ColCategoryCode),
			CategoryLabel: text(row, ColCategoryLabel),

			Date:                 text(row, ColDate),
			Description:          text(row, ColDescription),
			ItemizationLabel:     text(row, ColItemizationLabel),
			MemberEventLabel:     text(row, ColMemberEventLabel),
			EventLocation:        text(row, ColEventLocation),
			EventPurpose:         text(row, ColEventPurpose),
			SponsorName:          text(row, ColSponsorName),
			PotentialSponsorship: truthy(row[ColPotentialSponsorship]),
			NeedsInvestigation:   truthy(row[ColNeedsInvestigation]),
		})
	}
	return rows, nil
}

func text(row map[string]string, col string) string {
	return strings.TrimSpace(row[col])
}

func truthy(value string) bool {
	return truthyTokens[strings.ToLower(strings.TrimSpace(value))]
}

// parseInt accepts integer and integral float spellings ("2024",
// "2024.0"); the monthly tool has exported both over the years.
// Fractional values were already rejected during validation.
func parseInt(value string) int {
	f, _ := strconv.ParseFloat(strings.TrimSpace(value), 64)
	return int(f)
}

func parseFloat(value string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(value), 64)
	return f
}
