package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/faoa-tools/annual-report/pkg/models/domain"
)

// ReportFilename is the suggested download name for the annual report.
func ReportFilename(year int) string {
	return fmt.Sprintf("FAOA_Annual_Financial_Report_%d.txt", year)
}

// SummaryFilename is the suggested download name for the adjusted summary.
func SummaryFilename(year int) string {
	return fmt.Sprintf("FAOA_Annual_Summary_%d.csv", year)
}

// WriteSummaryCSV writes the adjusted annual summary as delimited text.
// Amounts are plain two-decimal numbers; currency symbols stay in the
// text report.
func WriteSummaryCSV(w io.Writer, s domain.Summary) error {
	writer := csv.NewWriter(w)

	header := []string{"IRS Category Code", "IRS Category Label", "Raw Total Amount", "Adjusted Total Amount"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}

	for _, row := range s.Rows {
		record := []string{
			row.CategoryCode,
			row.CategoryLabel,
			fmt.Sprintf("%.2f", row.RawTotal),
			fmt.Sprintf("%.2f", row.AdjustedTotal),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
