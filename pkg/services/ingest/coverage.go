package ingest

import (
	"github.com/faoa-tools/annual-report/pkg/models/domain"
)

// Coverage reports which calendar months appear in the merged dataset.
// Advisory only: missing months never block report generation, and
// months outside 1-12 are ignored rather than rejected.
type Coverage struct {
	Present []int
	Missing []int
}

// Complete reports whether all twelve months are present.
func (c Coverage) Complete() bool {
	return len(c.Missing) == 0
}

// MonthCoverage computes the month coverage of a merged dataset.
func MonthCoverage(rows []domain.Transaction) Coverage {
	seen := make(map[int]bool)
	for _, row := range rows {
		if row.Month >= 1 && row.Month <= 12 {
			seen[row.Month] = true
		}
	}

	coverage := Coverage{}
	for month := 1; month <= 12; month++ {
		if seen[month] {
			coverage.Present = append(coverage.Present, month)
		} else {
			coverage.Missing = append(coverage.Missing, month)
		}
	}
	return coverage
}
