package workbook

import (
	"strings"

	"github.com/cleared-dev/bmnledger/internal/extract"
	"github.com/cleared-dev/bmnledger/internal/model"
)

// Table is a headered view over a grid: one row supplies column names and
// the rows below it are addressed by name.
type Table struct {
	Headers []string
	Rows    []model.Row
	index   map[string]int
}

// NewTable uses row headerRow of g as the header. Rows above it are dropped.
func NewTable(g model.Grid, headerRow int) Table {
	hdr := g.Row(headerRow)
	t := Table{
		Headers: make([]string, hdr.Len()),
		index:   make(map[string]int, hdr.Len()),
	}
	for i := 0; i < hdr.Len(); i++ {
		name := strings.TrimSpace(hdr.Cell(i).String())
		t.Headers[i] = name
		if _, dup := t.index[name]; !dup && name != "" {
			t.index[name] = i
		}
	}
	for i := headerRow + 1; i < g.Len(); i++ {
		t.Rows = append(t.Rows, g.Row(i))
	}
	return t
}

// Require fails with an *extract.MissingColumnsError naming every absent column.
func (t Table) Require(cols ...string) error {
	return extract.RequireColumns(t.Headers, cols)
}

// Has reports whether the table carries column col.
func (t Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Cell returns the value of column col in data row r, or an empty cell.
func (t Table) Cell(r int, col string) model.Cell {
	i, ok := t.index[col]
	if !ok || r < 0 || r >= len(t.Rows) {
		return model.Empty()
	}
	return t.Rows[r].Cell(i)
}

// Len returns the number of data rows.
func (t Table) Len() int { return len(t.Rows) }
