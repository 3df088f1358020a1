package workbook

import (
	"encoding/csv"
	"fmt"
	"io"
)

// readCSV reads a ragged CSV export. Rows may have any number of fields.
func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	return records, nil
}
