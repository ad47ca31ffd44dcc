package summary

import (
	"github.com/faoa-tools/annual-report/pkg/models/domain"
)

// Epsilon absorbs float summation noise when checking a transfer against
// the source category's raw total.
const Epsilon = 1e-9

// ApplyReclassification moves amount from the source category's adjusted
// total to the target's. Raw totals are never touched: the transfer
// corrects how revenue is reported, not what was collected. Rows for
// both codes are synthesized at zero with their canonical labels when
// the year produced no transactions for them.
//
// The transfer must be applied against a summary freshly recomputed from
// raw totals; applying on top of an earlier transfer compounds the
// shift. Callers re-Build (or Clone the base) before every apply.
func ApplyReclassification(s *domain.Summary, amount float64, sourceCode, targetCode string) error {
	if amount < 0 {
		return domain.NewValidationError("reclassification amount must not be negative, got %.2f", amount)
	}
	if amount == 0 {
		// Nothing moves, and no adjustment requires synthesizing rows.
		return nil
	}

	// Guard before synthesizing rows: a rejected transfer must leave the
	// summary exactly as it was. CodeRawTotal reports 0 for absent codes.
	if raw := s.CodeRawTotal(sourceCode); amount > raw+Epsilon {
		return domain.NewValidationError(
			"reclassification amount %.2f exceeds the raw total %.2f of category %s",
			amount, raw, sourceCode)
	}

	ensureRow(s, sourceCode)
	ensureRow(s, targetCode)

	// With duplicate-label rows for one code, the delta lands on the
	// first row in label order; the guard above already covered the
	// code's combined raw total.
	s.Rows[firstRowIndex(s, sourceCode)].AdjustedTotal -= amount
	s.Rows[firstRowIndex(s, targetCode)].AdjustedTotal += amount
	return nil
}

func firstRowIndex(s *domain.Summary, code string) int {
	for i := range s.Rows {
		if s.Rows[i].CategoryCode == code {
			return i
		}
	}
	return -1
}

func ensureRow(s *domain.Summary, code string) {
	if firstRowIndex(s, code) >= 0 {
		return
	}
	s.Rows = append(s.Rows, domain.SummaryRow{
		CategoryCode:  code,
		CategoryLabel: domain.CanonicalLabel(code),
	})
	sortRows(s.Rows)
}
