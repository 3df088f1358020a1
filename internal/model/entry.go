package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Category identifies one of the supported BMN report types.
type Category string

const (
	CategoryAssetPosition  Category = "asset-position"  // Neraca
	CategoryOpeningBalance Category = "opening-balance" // Saldo Awal
	CategoryDepreciation   Category = "depreciation"    // Penyusutan
)

// Categories lists every supported category in display order.
func Categories() []Category {
	return []Category{CategoryAssetPosition, CategoryOpeningBalance, CategoryDepreciation}
}

// SourceName returns the name the reporting tools use for the category.
func (c Category) SourceName() string {
	switch c {
	case CategoryAssetPosition:
		return "Neraca"
	case CategoryOpeningBalance:
		return "Saldo Awal"
	case CategoryDepreciation:
		return "Penyusutan"
	}
	return string(c)
}

// Kind is the comptable classification of a depreciation report.
type Kind string

const (
	KindIntra Kind = "INTRAKOMPTABEL"
	KindExtra Kind = "EKSTRAKOMPTABEL"
)

// Metadata defaults used when the header rows carry no organization.
const (
	UnknownOrgCode = "000"
	UnknownOrgName = "Unknown"
)

// ReportMetadata is the organization and fiscal year found in a report's header rows.
type ReportMetadata struct {
	OrgCode    string
	OrgName    string
	FiscalYear *int // nil when no year was found
}

// DefaultMetadata returns the metadata used when nothing is found.
func DefaultMetadata() ReportMetadata {
	return ReportMetadata{OrgCode: UnknownOrgCode, OrgName: UnknownOrgName}
}

// LedgerEntry is one extracted account line.
type LedgerEntry struct {
	Category    Category        `json:"category"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Value       decimal.Decimal `json:"value"`
	FiscalYear  int             `json:"fiscal_year"` // 0 = unresolved
	OrgCode     string          `json:"org_code"`
	OrgName     string          `json:"org_name"`

	// Depreciation reports only.
	Kind             Kind            `json:"kind,omitempty"`
	AcquisitionValue decimal.Decimal `json:"acquisition_value,omitzero"`
	OpeningValue     decimal.Decimal `json:"opening_value,omitzero"`
	Additions        decimal.Decimal `json:"additions,omitzero"`
	Reductions       decimal.Decimal `json:"reductions,omitzero"`
	ClosingValue     decimal.Decimal `json:"closing_value,omitzero"`
	BookValue        decimal.Decimal `json:"book_value,omitzero"`
}

// MarshalJSON writes every depreciation amount of a depreciation entry, zero
// amounts included. Other categories leave them out.
func (e LedgerEntry) MarshalJSON() ([]byte, error) {
	type entry LedgerEntry
	if e.Category != CategoryDepreciation {
		return json.Marshal(entry(e))
	}
	return json.Marshal(struct {
		entry
		AcquisitionValue decimal.Decimal `json:"acquisition_value"`
		OpeningValue     decimal.Decimal `json:"opening_value"`
		Additions        decimal.Decimal `json:"additions"`
		Reductions       decimal.Decimal `json:"reductions"`
		ClosingValue     decimal.Decimal `json:"closing_value"`
		BookValue        decimal.Decimal `json:"book_value"`
	}{
		entry:            entry(e),
		AcquisitionValue: e.AcquisitionValue,
		OpeningValue:     e.OpeningValue,
		Additions:        e.Additions,
		Reductions:       e.Reductions,
		ClosingValue:     e.ClosingValue,
		BookValue:        e.BookValue,
	})
}

// Organization is a row of the organization (BA) reference table.
type Organization struct {
	Code string
	Name string
}

// Account is a row of the account reference table.
type Account struct {
	Code     string
	Name     string
	Category string // free-form grouping, e.g. "Neraca"
}
