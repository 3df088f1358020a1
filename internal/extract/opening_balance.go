package extract

import (
	"github.com/cleared-dev/bmnledger/internal/model"
)

// OpeningBalance extracts Saldo Awal (opening balance) reports.
type OpeningBalance struct{}

const (
	openingColCode  = 0
	openingColName  = 4
	openingColValue = 7
)

var openingColumns = columns{code: openingColCode, name: openingColName, value: openingColValue}

// Category returns model.CategoryOpeningBalance.
func (OpeningBalance) Category() model.Category { return model.CategoryOpeningBalance }

// Extract returns one entry per row with a digit code in column 0 and a
// numeric value in column 7. The fiscal year comes from the header rows,
// falling back to opts.FiscalYear.
func (OpeningBalance) Extract(g model.Grid, filename string, opts Options) []model.LedgerEntry {
	meta := ScanMetadata(g)
	year := resolveYear(meta, opts)

	var entries []model.LedgerEntry
	for i := 0; i < g.Len(); i++ {
		code, name, value, ok := valueRow(g.Row(i), openingColumns)
		if !ok {
			continue
		}
		entries = append(entries, model.LedgerEntry{
			Category:    model.CategoryOpeningBalance,
			AccountCode: code,
			AccountName: name,
			Value:       value,
			FiscalYear:  year,
			OrgCode:     meta.OrgCode,
			OrgName:     meta.OrgName,
		})
	}
	return entries
}
