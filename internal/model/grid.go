package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CellKind classifies a grid cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// Cell is one spreadsheet cell: text, number or empty.
type Cell struct {
	kind CellKind
	text string
	num  decimal.Decimal
}

// Empty returns an absent cell.
func Empty() Cell { return Cell{} }

// Text returns a text cell. Blank text is treated as empty.
func Text(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Cell{}
	}
	return Cell{kind: CellText, text: s}
}

// Number returns a numeric cell.
func Number(d decimal.Decimal) Cell {
	return Cell{kind: CellNumber, num: d}
}

// Int returns a numeric cell holding n.
func Int(n int64) Cell { return Number(decimal.NewFromInt(n)) }

// Float returns a numeric cell holding f.
func Float(f float64) Cell { return Number(decimal.NewFromFloat(f)) }

// ParseCell classifies a raw loader value. Values that read as plain decimals
// become numbers; anything else, including digit strings with a leading zero
// such as "005", stays text so that its spelling survives.
func ParseCell(raw string) Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Cell{}
	}
	if len(s) > 1 && s[0] == '0' && s[1] != '.' {
		return Cell{kind: CellText, text: raw}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Cell{kind: CellText, text: raw}
	}
	return Cell{kind: CellNumber, text: s, num: d}
}

// Kind reports the cell kind.
func (c Cell) Kind() CellKind { return c.kind }

// IsEmpty reports whether the cell is absent.
func (c Cell) IsEmpty() bool { return c.kind == CellEmpty }

// Decimal returns the numeric value and whether the cell is a number.
func (c Cell) Decimal() (decimal.Decimal, bool) {
	return c.num, c.kind == CellNumber
}

// String stringifies the cell. Numbers keep their loaded spelling when they
// have one and otherwise render in canonical decimal form.
func (c Cell) String() string {
	switch c.kind {
	case CellText:
		return c.text
	case CellNumber:
		if c.text != "" {
			return c.text
		}
		return c.num.String()
	}
	return ""
}

// Row is one physical grid row.
type Row []Cell

// Len returns the number of cells in the row, trailing empties included.
func (r Row) Len() int { return len(r) }

// Cell returns the cell at column col, or an empty cell when out of range.
func (r Row) Cell(col int) Cell {
	if col < 0 || col >= len(r) {
		return Cell{}
	}
	return r[col]
}

// Values returns the trimmed string form of every non-empty cell.
func (r Row) Values() []string {
	var out []string
	for _, c := range r {
		if c.IsEmpty() {
			continue
		}
		if s := strings.TrimSpace(c.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Grid is a headerless 2-D cell container; row 0 is the first physical row.
type Grid struct {
	rows []Row
}

// NewGrid wraps rows in a Grid. The slice is not copied.
func NewGrid(rows []Row) Grid {
	return Grid{rows: rows}
}

// GridFromStrings builds a Grid classifying every value with ParseCell.
func GridFromStrings(rows [][]string) Grid {
	out := make([]Row, len(rows))
	for i, rec := range rows {
		row := make(Row, len(rec))
		for j, v := range rec {
			row[j] = ParseCell(v)
		}
		out[i] = row
	}
	return Grid{rows: out}
}

// Len returns the number of rows.
func (g Grid) Len() int { return len(g.rows) }

// Row returns row i, or nil when out of range.
func (g Grid) Row(i int) Row {
	if i < 0 || i >= len(g.rows) {
		return nil
	}
	return g.rows[i]
}

// Cell returns the cell at (row, col), or an empty cell when out of range.
func (g Grid) Cell(row, col int) Cell {
	return g.Row(row).Cell(col)
}

// Width returns the widest row length.
func (g Grid) Width() int {
	w := 0
	for _, r := range g.rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}
