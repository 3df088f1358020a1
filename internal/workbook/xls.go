package workbook

import (
	"fmt"
	"io"

	"github.com/shakinm/xlsReader/xls"
)

// readXLS returns the cell values of a legacy BIFF workbook sheet: the one
// named sheet, or the first when sheet is empty.
func readXLS(r io.ReadSeeker, sheet string) ([][]string, error) {
	wb, err := xls.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening xls: %w", err)
	}
	sheets := wb.GetSheets()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}

	idx := 0
	if sheet != "" {
		idx = -1
		for i := range sheets {
			if sheets[i].GetName() == sheet {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", ErrNoSheet, sheet)
		}
	}

	s, err := wb.GetSheet(idx)
	if err != nil {
		return nil, fmt.Errorf("reading xls sheet: %w", err)
	}

	var rows [][]string
	for _, row := range s.GetRows() {
		var rec []string
		for _, cell := range row.GetCols() {
			rec = append(rec, cell.GetString())
		}
		rows = append(rows, rec)
	}
	return rows, nil
}
