package domain

import (
	"sort"
	"strconv"
)

// Category codes with a special role in the report.
const (
	SponsorCategoryCode  = "1"  // itemized by sponsor name when sponsors are recorded
	ReclassSourceCode    = "2"  // membership dues, where gala ticket revenue lands
	ReclassTargetCode    = "9"  // exempt-purpose receipts, where it belongs
	NarrativeExpenseCode = "14" // carries a fixed explanatory paragraph
	EventExpenseCode     = "16" // itemized per event rather than by label
)

var revenueLabels = map[string]string{
	"1": "Gifts, Grants, and Contributions",
	"2": "Membership Dues and Assessments",
	"3": "Investment Income",
	"4": "Program Service Revenue",
	"6": "Special Events Revenue",
	"7": "Sales of Inventory",
	"9": "Exempt-Purpose Receipts",
}

var expenseLabels = map[string]string{
	"14": "Fundraising Expenses",
	"15": "Printing, Publications, and Postage",
	"16": "Event Expenses",
	"18": "Professional Fees",
	"19": "Occupancy and Equipment",
	"22": "Administrative Expenses",
	"23": "Other Expenses",
}

// RevenueCodes returns the closed set of revenue category codes in
// ascending numeric order.
func RevenueCodes() []string {
	return sortedCodes(revenueLabels)
}

// ExpenseCodes returns the closed set of expense category codes in
// ascending numeric order.
func ExpenseCodes() []string {
	return sortedCodes(expenseLabels)
}

func IsRevenueCode(code string) bool {
	_, ok := revenueLabels[code]
	return ok
}

func IsExpenseCode(code string) bool {
	_, ok := expenseLabels[code]
	return ok
}

// IsKnownCode reports whether code belongs to the revenue or expense set.
func IsKnownCode(code string) bool {
	return IsRevenueCode(code) || IsExpenseCode(code)
}

// CanonicalLabel returns the display label for a category code. It is the
// fallback used when a summary row has to be synthesized for a code with
// no underlying transactions. Unknown codes return an empty string.
func CanonicalLabel(code string) string {
	if label, ok := revenueLabels[code]; ok {
		return label
	}
	return expenseLabels[code]
}

// CodeValue returns the numeric sort key of a category code. Codes are
// numeric-string tokens; ordering is by integer value, not lexicographic.
func CodeValue(code string) int {
	v, _ := strconv.Atoi(code)
	return v
}

func sortedCodes(labels map[string]string) []string {
	codes := make([]string, 0, len(labels))
	for code := range labels {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		return CodeValue(codes[i]) < CodeValue(codes[j])
	})
	return codes
}
