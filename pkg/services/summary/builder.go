package summary

import (
	"sort"

	"github.com/faoa-tools/annual-report/pkg/models/domain"
)

// Build aggregates a merged dataset into the annual summary: one row per
// distinct (category code, category label) pair, raw total summed over
// matching transactions, adjusted total seeded equal to raw. A code that
// appears under two labels keeps two rows; the upload is the audit trail
// and label drift should stay visible.
func Build(rows []domain.Transaction) domain.Summary {
	type group struct {
		code  string
		label string
	}

	totals := make(map[group]float64)
	for _, row := range rows {
		totals[group{code: row.CategoryCode, label: row.CategoryLabel}] += row.Amount
	}

	out := make([]domain.SummaryRow, 0, len(totals))
	for g, total := range totals {
		out = append(out, domain.SummaryRow{
			CategoryCode:  g.code,
			CategoryLabel: g.label,
			RawTotal:      total,
			AdjustedTotal: total,
		})
	}
	sortRows(out)
	return domain.Summary{Rows: out}
}

func sortRows(rows []domain.SummaryRow) {
	sort.Slice(rows, func(i, j int) bool {
		vi, vj := domain.CodeValue(rows[i].CategoryCode), domain.CodeValue(rows[j].CategoryCode)
		if vi != vj {
			return vi < vj
		}
		return rows[i].CategoryLabel < rows[j].CategoryLabel
	})
}
