package extract

import (
	"github.com/cleared-dev/bmnledger/internal/model"
)

// AssetPosition extracts Neraca (asset position) reports.
type AssetPosition struct{}

// PlaceholderFiscalYear is stamped on asset-position entries when the caller
// supplies no year. These reports do not reliably carry a year in their header
// rows, and historical output was produced with this value.
const PlaceholderFiscalYear = 2023

const (
	assetColCode  = 1
	assetColName  = 5
	assetColValue = 8
)

var assetColumns = columns{code: assetColCode, name: assetColName, value: assetColValue}

// Category returns model.CategoryAssetPosition.
func (AssetPosition) Category() model.Category { return model.CategoryAssetPosition }

// Extract returns one entry per row with a digit code in column 1 and a
// numeric value in column 8.
func (AssetPosition) Extract(g model.Grid, filename string, opts Options) []model.LedgerEntry {
	meta := ScanMetadata(g)

	year := PlaceholderFiscalYear
	if opts.FiscalYear != 0 {
		year = opts.FiscalYear
	}

	var entries []model.LedgerEntry
	for i := 0; i < g.Len(); i++ {
		code, name, value, ok := valueRow(g.Row(i), assetColumns)
		if !ok {
			continue
		}
		entries = append(entries, model.LedgerEntry{
			Category:    model.CategoryAssetPosition,
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
