package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/faoa-tools/annual-report/pkg/models/domain"
)

const (
	orgTitle  = "Foreign Area Officer Association Annual Financial Report"
	orgName   = "Foreign Area Officer Association (FAOA)"
	separator = "------------------------------------------------------------------------"

	// UnlabeledToken stands in for a blank itemization label when a
	// category is grouped by label.
	UnlabeledToken = "UNLABELED"

	fundraisingNarrative = "    Fundraising costs cover event production, outreach materials," +
		" and vendor fees incurred to raise the revenue reported above."
)

// Inputs is everything a render depends on. Rendering is a pure function
// of this struct: identical inputs produce byte-identical text.
type Inputs struct {
	Year          int
	Summary       domain.Summary
	Rows          []domain.Transaction
	ReclassAmount float64
}

// Render produces the annual text report.
func Render(in Inputs) string {
	var lines []string

	lines = append(lines,
		fmt.Sprintf("%d %s", in.Year, orgTitle),
		orgName,
		separator,
		"",
	)

	lines = appendSummarySection(lines, "Revenue", in.Summary, domain.IsRevenueCode,
		"  (No revenue recorded for this period.)")
	lines = append(lines, "")
	lines = appendSummarySection(lines, "Expense", in.Summary, domain.IsExpenseCode,
		"  (No expenses recorded for this period.)")

	lines = append(lines, "", "Itemized Revenue (BY IRS CATEGORY)", "", "ITEMIZED REVENUE")
	lines = appendItemizedRevenue(lines, in)

	lines = append(lines, "", "Itemized Expenses (BY IRS CATEGORY)", "", "ITEMIZED EXPENSES")
	lines = appendItemizedExpenses(lines, in)

	lines = append(lines, "", "NEEDS FURTHER INVESTIGATION (Treasurer Flagged)")
	lines = appendFlagged(lines, in.Rows)

	lines = append(lines, "", "End of report.")
	return strings.Join(lines, "\n")
}

func appendSummarySection(
	lines []string,
	kind string,
	s domain.Summary,
	member func(string) bool,
	placeholder string,
) []string {
	lines = append(lines,
		fmt.Sprintf("%s Categories (using Adjusted totals)", kind),
		"",
		strings.ToUpper(kind)+" CATEGORIES",
	)

	found := false
	for _, row := range s.Rows {
		if !member(row.CategoryCode) {
			continue
		}
		found = true
		lines = append(lines, fmt.Sprintf("  %s - %s: %s",
			row.CategoryCode, row.CategoryLabel, FormatCurrency(row.AdjustedTotal)))
	}
	if !found {
		lines = append(lines, placeholder)
	}
	return lines
}

func appendItemizedRevenue(lines []string, in Inputs) []string {
	revenue := filterRows(in.Rows, domain.IsRevenueCode)
	if len(revenue) == 0 && in.ReclassAmount <= 0 {
		return append(lines, "  (No itemized revenue entries.)")
	}

	for _, code := range domain.RevenueCodes() {
		rows := filterRows(revenue, func(c string) bool { return c == code })

		switch code {
		case domain.SponsorCategoryCode:
			if len(rows) == 0 {
				continue
			}
			lines = append(lines, categoryHeader(code, categoryLabel(rows, code), ""))
			lines = appendSponsorDetail(lines, rows)

		case domain.ReclassTargetCode:
			// Rendered even with no underlying transactions whenever
			// gala tickets were reclassified into it.
			if len(rows) == 0 && in.ReclassAmount <= 0 {
				continue
			}
			lines = append(lines, categoryHeader(code, categoryLabel(rows, code), ""))
			if in.ReclassAmount > 0 {
				lines = append(lines, fmt.Sprintf("    Gala Tickets: %s", FormatCurrency(in.ReclassAmount)))
			}
			lines = appendGroupedDetail(lines, rows, false)

		default:
			if len(rows) == 0 {
				continue
			}
			lines = append(lines, categoryHeader(code, categoryLabel(rows, code), ""))
			lines = appendGroupedDetail(lines, rows, false)
		}
	}
	return lines
}

func appendItemizedExpenses(lines []string, in Inputs) []string {
	expenses := filterRows(in.Rows, domain.IsExpenseCode)
	if len(expenses) == 0 {
		return append(lines, "  (No itemized expense entries.)")
	}

	for _, code := range domain.ExpenseCodes() {
		rows := filterRows(expenses, func(c string) bool { return c == code })
		if len(rows) == 0 {
			continue
		}

		switch code {
		case domain.NarrativeExpenseCode:
			lines = append(lines, categoryHeader(code, categoryLabel(rows, code), " (consolidated by type)"))
			lines = append(lines, fundraisingNarrative)
			if hasItemizationLabels(rows) {
				lines = appendGroupedDetail(lines, rows, true)
			} else {
				lines = append(lines, fmt.Sprintf("    Total: %s", FormatCurrency(sumAmounts(rows))))
			}

		case domain.EventExpenseCode:
			lines = append(lines, categoryHeader(code, categoryLabel(rows, code), " (individual events)"))
			lines = appendEventDetail(lines, rows)

		default:
			// An all-placeholder group says nothing useful; skip the
			// category rather than print UNLABELED alone.
			if !hasItemizationLabels(rows) {
				continue
			}
			lines = append(lines, categoryHeader(code, categoryLabel(rows, code), " (consolidated by type)"))
			lines = appendGroupedDetail(lines, rows, false)
		}
	}
	return lines
}

func appendSponsorDetail(lines []string, rows []domain.Transaction) []string {
	sponsored := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		if row.SponsorName != "" {
			sponsored = append(sponsored, row)
		}
	}
	if len(sponsored) == 0 {
		return appendGroupedDetail(lines, rows, false)
	}

	totals := make(map[string]float64)
	for _, row := range sponsored {
		totals[row.SponsorName] += row.Amount
	}
	for _, name := range sortedKeys(totals) {
		lines = append(lines, fmt.Sprintf("    %s: %s", name, FormatCurrency(totals[name])))
	}
	return lines
}

// appendGroupedDetail renders the default itemization: amounts summed by
// itemization label, ascending, blanks mapped to the UNLABELED token.
func appendGroupedDetail(lines []string, rows []domain.Transaction, skipBlank bool) []string {
	totals := make(map[string]float64)
	for _, row := range rows {
		label := row.ItemizationLabel
		if label == "" {
			if skipBlank {
				continue
			}
			label = UnlabeledToken
		}
		totals[label] += row.Amount
	}
	for _, label := range sortedKeys(totals) {
		lines = append(lines, fmt.Sprintf("    %s: %s", label, FormatCurrency(totals[label])))
	}
	return lines
}

func appendEventDetail(lines []string, rows []domain.Transaction) []string {
	lines = append(lines, "    Date | Event | Location | Purpose | Amount")

	ordered := make([]domain.Transaction, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Date != ordered[j].Date {
			return ordered[i].Date < ordered[j].Date
		}
		return ordered[i].MemberEventLabel < ordered[j].MemberEventLabel
	})

	for _, row := range ordered {
		lines = append(lines, fmt.Sprintf("    %s | %s | %s | %s | %s",
			row.Date, row.MemberEventLabel, row.EventLocation, row.EventPurpose,
			FormatCurrency(row.Amount)))
	}
	return lines
}

func appendFlagged(lines []string, rows []domain.Transaction) []string {
	var count int
	var total float64
	for _, row := range rows {
		if row.NeedsInvestigation {
			count++
			total += row.Amount
		}
	}
	if count == 0 {
		return append(lines, "  (None flagged this period.)")
	}
	return append(lines,
		fmt.Sprintf("  Count of flagged transactions: %d", count),
		fmt.Sprintf("  Net total of flagged amounts: %s", FormatCurrency(total)),
	)
}

func categoryHeader(code, label, suffix string) string {
	return fmt.Sprintf("  Category %s – %s%s:", code, label, suffix)
}

// categoryLabel picks the label of the first row observed for a code,
// falling back to the canonical label when the category was synthesized.
func categoryLabel(rows []domain.Transaction, code string) string {
	for _, row := range rows {
		if row.CategoryCode == code {
			return row.CategoryLabel
		}
	}
	return domain.CanonicalLabel(code)
}

func filterRows(rows []domain.Transaction, member func(string) bool) []domain.Transaction {
	var out []domain.Transaction
	for _, row := range rows {
		if member(row.CategoryCode) {
			out = append(out, row)
		}
	}
	return out
}

func hasItemizationLabels(rows []domain.Transaction) bool {
	for _, row := range rows {
		if row.ItemizationLabel != "" {
			return true
		}
	}
	return false
}

func sumAmounts(rows []domain.Transaction) float64 {
	var total float64
	for _, row := range rows {
		total += row.Amount
	}
	return total
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
