package report

import (
	"fmt"
	"math"
	"strings"
)

// FormatCurrency renders a US-dollar amount with thousands separators
// and exactly two decimals. Unrepresentable values (NaN, infinities from
// upstream float math) render as $0.00 rather than leaking into the
// report.
func FormatCurrency(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "$0.00"
	}

	s := fmt.Sprintf("%.2f", value)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	return "$" + sign + strings.Join(groups, ",") + "." + fracPart
}
