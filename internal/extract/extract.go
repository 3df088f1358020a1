// Package extract turns headerless BMN report grids into ledger entries.
//
// Each report category has its own fixed column map and acceptance rules.
// Rows that do not look like data (titles, headers, subtotals, footers,
// blanks) are skipped one by one; a bad row never stops the walk.
package extract

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bmnledger/internal/model"
)

// Extractor converts one report grid into ledger entries.
type Extractor interface {
	Category() model.Category
	// Extract walks g top to bottom. filename is informational only.
	Extract(g model.Grid, filename string, opts Options) []model.LedgerEntry
}

// Options carries caller-supplied settings for a single extraction.
type Options struct {
	// FiscalYear is the caller's year. Asset-position reports always use it
	// when set; the other categories fall back to it when the header rows
	// carry no year. Zero means not supplied.
	FiscalYear int
}

// columns is the fixed layout of a single-value report.
type columns struct {
	code  int
	name  int
	value int
}

// valueRow reads a single-value data row. Rows with a missing or non-digit
// code, or a missing or non-numeric value, are rejected.
func valueRow(r model.Row, cols columns) (code, name string, value decimal.Decimal, ok bool) {
	code, ok = DigitCode(r.Cell(cols.code))
	if !ok {
		return "", "", decimal.Zero, false
	}
	value, err := ParseDecimal(r.Cell(cols.value))
	if err != nil {
		return "", "", decimal.Zero, false
	}
	return code, trimmed(r.Cell(cols.name)), value, true
}

// resolveYear picks the header year, then the caller's year. Zero means unresolved.
func resolveYear(meta model.ReportMetadata, opts Options) int {
	if meta.FiscalYear != nil {
		return *meta.FiscalYear
	}
	return opts.FiscalYear
}

func trimmed(c model.Cell) string {
	if c.IsEmpty() {
		return ""
	}
	return strings.TrimSpace(c.String())
}
