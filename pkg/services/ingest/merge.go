package ingest

import (
	"sort"
	"strconv"
	"strings"

	"github.com/faoa-tools/annual-report/pkg/models/domain"
)

// MaxMonthlyFiles caps one merge at a year of monthly exports. The
// upload form enforces the same limit, but the pipeline boundary is
// where the policy has to hold for every caller.
const MaxMonthlyFiles = 12

// Merge concatenates normalized datasets into one row set, preserving
// upload order and then original row order.
func Merge(datasets [][]domain.Transaction) ([]domain.Transaction, error) {
	if len(datasets) == 0 {
		return nil, domain.NewValidationError("at least one monthly file is required")
	}
	if len(datasets) > MaxMonthlyFiles {
		return nil, domain.NewValidationError(
			"at most %d monthly files may be merged, got %d", MaxMonthlyFiles, len(datasets))
	}

	var total int
	for _, ds := range datasets {
		total += len(ds)
	}
	merged := make([]domain.Transaction, 0, total)
	for _, ds := range datasets {
		merged = append(merged, ds...)
	}
	return merged, nil
}

// ValidateSingleYear ensures every merged row belongs to the same year
// and returns it. Runs over the merged set, not per file, so a pair of
// individually consistent files still fails together.
func ValidateSingleYear(rows []domain.Transaction) (int, error) {
	seen := make(map[int]bool)
	for _, row := range rows {
		seen[row.Year] = true
	}

	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	sort.Ints(years)

	if len(years) != 1 {
		labels := make([]string, len(years))
		for i, year := range years {
			labels[i] = strconv.Itoa(year)
		}
		return 0, domain.NewConsistencyError(
			"uploaded files must all belong to the same year; found years: %s",
			strings.Join(labels, ", "))
	}
	return years[0], nil
}

// ValidateCategories ensures every category code is inside the closed
// revenue/expense set, listing every offender.
func ValidateCategories(rows []domain.Transaction) error {
	seen := make(map[string]bool)
	var unknown []string
	for _, row := range rows {
		if domain.IsKnownCode(row.CategoryCode) || seen[row.CategoryCode] {
			continue
		}
		seen[row.CategoryCode] = true
		unknown = append(unknown, row.CategoryCode)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return domain.NewConsistencyError(
			"unexpected IRS category codes found: %s", strings.Join(unknown, ", "))
	}
	return nil
}
