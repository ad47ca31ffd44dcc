package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/faoa-tools/annual-report/pkg/export"
	"github.com/faoa-tools/annual-report/pkg/models/domain"
	"github.com/faoa-tools/annual-report/pkg/services/ingest"
	"github.com/faoa-tools/annual-report/pkg/services/report"
	"github.com/faoa-tools/annual-report/pkg/services/summary"
)

type GenerateCmd struct {
	files      []string
	reclass    float64
	reportOut  string
	summaryOut string
	output     io.Writer
}

func NewGenerateCmd(output io.Writer) *cobra.Command {
	gc := &GenerateCmd{output: output}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the annual report from monthly CSV exports",
		RunE:  gc.run,
	}

	cmd.Flags().StringArrayVar(&gc.files, "file", nil, "Monthly CSV export (repeat for each month, 1-12 files)")
	cmd.Flags().Float64Var(&gc.reclass, "reclass", 0, "Gala ticket amount to reclassify from dues to exempt-purpose receipts")
	cmd.Flags().StringVar(&gc.reportOut, "out", "", "Write the report to this path instead of stdout")
	cmd.Flags().StringVar(&gc.summaryOut, "summary-out", "", "Also write the adjusted summary CSV to this path")

	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, args []string) error {
	datasets := make([][]domain.Transaction, 0, len(gc.files))
	for _, path := range gc.files {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %q: %w", path, err)
		}
		ds, err := ingest.DecodeCSV(path, f)
		_ = f.Close()
		if err != nil {
			return err
		}
		rows, err := ingest.Normalize(ds)
		if err != nil {
			return err
		}
		datasets = append(datasets, rows)
	}

	merged, err := ingest.Merge(datasets)
	if err != nil {
		return err
	}
	year, err := ingest.ValidateSingleYear(merged)
	if err != nil {
		return err
	}
	if err := ingest.ValidateCategories(merged); err != nil {
		return err
	}

	annual := summary.Build(merged)
	if err := summary.ApplyReclassification(&annual, gc.reclass,
		domain.ReclassSourceCode, domain.ReclassTargetCode); err != nil {
		return err
	}

	gc.printCoverage(ingest.MonthCoverage(merged))
	gc.printSummary(year, annual)

	text := report.Render(report.Inputs{
		Year:          year,
		Summary:       annual,
		Rows:          merged,
		ReclassAmount: gc.reclass,
	})

	if gc.reportOut != "" {
		if err := os.WriteFile(gc.reportOut, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Fprintf(gc.output, "Report written to %s\n", gc.reportOut)
	} else {
		fmt.Fprintln(gc.output, text)
	}

	if gc.summaryOut != "" {
		f, err := os.Create(gc.summaryOut)
		if err != nil {
			return fmt.Errorf("failed to create summary file: %w", err)
		}
		if err := export.WriteSummaryCSV(f, annual); err != nil {
			_ = f.Close()
			return err
		}
		// Some filesystems only report a failed write at close time.
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write summary file: %w", err)
		}
		fmt.Fprintf(gc.output, "Summary written to %s\n", gc.summaryOut)
	}

	return nil
}

func (gc *GenerateCmd) printCoverage(coverage ingest.Coverage) {
	if coverage.Complete() {
		fmt.Fprintln(gc.output, "All 12 months are present.")
		return
	}

	missing := make([]string, len(coverage.Missing))
	for i, m := range coverage.Missing {
		missing[i] = strconv.Itoa(m)
	}
	fmt.Fprintf(gc.output, "Missing months: %s. The report is generated from available months.\n",
		strings.Join(missing, ", "))
}

func (gc *GenerateCmd) printSummary(year int, annual domain.Summary) {
	fmt.Fprintf(gc.output, "Annual summary for %d:\n", year)

	table := tablewriter.NewWriter(gc.output)
	table.SetHeader([]string{"Code", "Label", "Raw Total", "Adjusted Total"})
	for _, row := range annual.Rows {
		table.Append([]string{
			row.CategoryCode,
			row.CategoryLabel,
			report.FormatCurrency(row.RawTotal),
			report.FormatCurrency(row.AdjustedTotal),
		})
	}
	table.Render()
}
