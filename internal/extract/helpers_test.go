package extract

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bmnledger/internal/model"
)

// row builds a grid row: nil is an empty cell, strings are text, ints and
// floats are numbers.
func row(vals ...any) model.Row {
	r := make(model.Row, len(vals))
	for i, v := range vals {
		switch v := v.(type) {
		case nil:
			r[i] = model.Empty()
		case string:
			r[i] = model.Text(v)
		case int:
			r[i] = model.Int(int64(v))
		case float64:
			r[i] = model.Float(v)
		default:
			panic(fmt.Sprintf("row: unsupported cell %T", v))
		}
	}
	return r
}

func grid(rows ...model.Row) model.Grid {
	return model.NewGrid(rows)
}

// at places v in column col of a row at least width cells wide.
func at(width int, cells map[int]any) model.Row {
	vals := make([]any, width)
	for col, v := range cells {
		vals[col] = v
	}
	return row(vals...)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func blankRows(n int) []model.Row {
	rows := make([]model.Row, n)
	for i := range rows {
		rows[i] = row()
	}
	return rows
}
