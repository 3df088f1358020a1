package extract

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bmnledger/internal/model"
)

// Depreciation extracts Penyusutan (depreciation) reports.
type Depreciation struct{}

const (
	deprCodeLen        = 6
	deprColCode        = 0
	deprColName        = 2
	deprColAcquisition = 6
	deprColOpening     = 7
	deprColAdditions   = 8
	deprColReductions  = 9
	deprColClosing     = 12
)

// Category returns model.CategoryDepreciation.
func (Depreciation) Category() model.Category { return model.CategoryDepreciation }

// Extract returns one entry per row whose column 0 holds exactly six digits.
// Shorter codes are group subtotals and are skipped. Missing amounts read as
// zero. The entry Value is the book value.
func (Depreciation) Extract(g model.Grid, filename string, opts Options) []model.LedgerEntry {
	meta := ScanMetadata(g)
	year := resolveYear(meta, opts)
	kind := ScanKind(g)

	var entries []model.LedgerEntry
	for i := 0; i < g.Len(); i++ {
		e, ok := depreciationRow(g.Row(i))
		if !ok {
			continue
		}
		e.FiscalYear = year
		e.OrgCode = meta.OrgCode
		e.OrgName = meta.OrgName
		e.Kind = kind
		entries = append(entries, e)
	}
	return entries
}

func depreciationRow(r model.Row) (model.LedgerEntry, bool) {
	code, ok := DigitCode(r.Cell(deprColCode))
	if !ok || len(code) != deprCodeLen {
		return model.LedgerEntry{}, false
	}

	book := BookValue(r)
	return model.LedgerEntry{
		Category:         model.CategoryDepreciation,
		AccountCode:      code,
		AccountName:      trimmed(r.Cell(deprColName)),
		Value:            book,
		AcquisitionValue: DecimalOrZero(r.Cell(deprColAcquisition)),
		OpeningValue:     DecimalOrZero(r.Cell(deprColOpening)),
		Additions:        DecimalOrZero(r.Cell(deprColAdditions)),
		Reductions:       DecimalOrZero(r.Cell(deprColReductions)),
		ClosingValue:     DecimalOrZero(r.Cell(deprColClosing)),
		BookValue:        book,
	}, true
}

// BookValue returns the rightmost cell of r that reads as a number. The book
// value column floats because trailing column counts differ between report
// vintages. A row with no numeric cell yields zero.
func BookValue(r model.Row) decimal.Decimal {
	for col := r.Len() - 1; col >= 0; col-- {
		if d, err := ParseDecimal(r.Cell(col)); err == nil {
			return d
		}
	}
	return decimal.Zero
}

// ScanKind reads the comptable kind from the first rows of a depreciation
// report. The first row naming either kind decides; the default is intra.
func ScanKind(g model.Grid) model.Kind {
	for i := 0; i < min(headerRows, g.Len()); i++ {
		probe := strings.ToUpper(strings.Join(g.Row(i).Values(), " "))
		switch {
		case strings.Contains(probe, string(model.KindExtra)):
			return model.KindExtra
		case strings.Contains(probe, string(model.KindIntra)):
			return model.KindIntra
		}
	}
	return model.KindIntra
}
