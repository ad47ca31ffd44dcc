package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// RawDataset is one uploaded delimited file, decoded but not yet
// normalized: every cell is still a string keyed by its header name.
type RawDataset struct {
	Name    string // source file name, used in error messages
	Columns []string
	Rows    []map[string]string
}

// DecodeCSV reads one monthly export. The first record is the header
// row; every following record must have the same number of fields.
func DecodeCSV(name string, r io.Reader) (RawDataset, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return RawDataset{}, fmt.Errorf("error reading file %q: %w", name, err)
	}
	if len(records) == 0 {
		return RawDataset{}, fmt.Errorf("error reading file %q: no header row", name)
	}

	columns := make([]string, len(records[0]))
	for i, col := range records[0] {
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff")
		}
		columns[i] = strings.TrimSpace(col)
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(columns))
		for i, col := range columns {
			row[col] = record[i]
		}
		rows = append(rows, row)
	}

	return RawDataset{Name: name, Columns: columns, Rows: rows}, nil
}
