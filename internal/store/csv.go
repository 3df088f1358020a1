package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bmnledger/internal/model"
)

// Header is the CSV header of the entry store.
const Header = "batch_id,source_file,category,fiscal_year,org_code,org_name,account_code,account_name,value,kind,acquisition_value,opening_value,additions,reductions,closing_value,book_value"

const (
	numFields      = 16
	colBatchID     = 0
	colSource      = 1
	colCategory    = 2
	colYear        = 3
	colOrgCode     = 4
	colOrgName     = 5
	colAcctCode    = 6
	colAcctName    = 7
	colValue       = 8
	colKind        = 9
	colAcquisition = 10
	colOpening     = 11
	colAdditions   = 12
	colReductions  = 13
	colClosing     = 14
	colBook        = 15
)

// Record is a stored ledger entry tagged with the batch that wrote it.
type Record struct {
	BatchID    string
	SourceFile string
	model.LedgerEntry
}

// ReadRecords reads all records from a store CSV reader.
func ReadRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading store CSV: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	// Skip header row.
	var recs []Record
	for i, row := range rows[1:] {
		rec, err := UnmarshalRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// WriteRecords writes records to w, including the header.
func WriteRecords(w io.Writer, recs []Record) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rec := range recs {
		if err := cw.Write(MarshalRecord(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRecord converts a Record to a CSV row. Depreciation amounts are
// written only for depreciation entries.
func MarshalRecord(rec Record) []string {
	row := make([]string, numFields)
	row[colBatchID] = rec.BatchID
	row[colSource] = rec.SourceFile
	row[colCategory] = string(rec.Category)
	row[colYear] = strconv.Itoa(rec.FiscalYear)
	row[colOrgCode] = rec.OrgCode
	row[colOrgName] = rec.OrgName
	row[colAcctCode] = rec.AccountCode
	row[colAcctName] = rec.AccountName
	row[colValue] = rec.Value.String()

	if rec.Category == model.CategoryDepreciation {
		row[colKind] = string(rec.Kind)
		row[colAcquisition] = rec.AcquisitionValue.String()
		row[colOpening] = rec.OpeningValue.String()
		row[colAdditions] = rec.Additions.String()
		row[colReductions] = rec.Reductions.String()
		row[colClosing] = rec.ClosingValue.String()
		row[colBook] = rec.BookValue.String()
	}
	return row
}

// UnmarshalRecord converts a CSV row to a Record.
func UnmarshalRecord(row []string) (Record, error) {
	if len(row) != numFields {
		return Record{}, fmt.Errorf("expected %d fields, got %d", numFields, len(row))
	}

	year, err := strconv.Atoi(row[colYear])
	if err != nil {
		return Record{}, fmt.Errorf("parsing fiscal_year %q: %w", row[colYear], err)
	}

	amounts := make(map[int]decimal.Decimal, 7)
	for _, col := range []int{colValue, colAcquisition, colOpening, colAdditions, colReductions, colClosing, colBook} {
		if row[col] == "" {
			amounts[col] = decimal.Zero
			continue
		}
		d, err := decimal.NewFromString(row[col])
		if err != nil {
			return Record{}, fmt.Errorf("parsing amount %q: %w", row[col], err)
		}
		amounts[col] = d
	}

	return Record{
		BatchID:    row[colBatchID],
		SourceFile: row[colSource],
		LedgerEntry: model.LedgerEntry{
			Category:         model.Category(row[colCategory]),
			AccountCode:      row[colAcctCode],
			AccountName:      row[colAcctName],
			Value:            amounts[colValue],
			FiscalYear:       year,
			OrgCode:          row[colOrgCode],
			OrgName:          row[colOrgName],
			Kind:             model.Kind(row[colKind]),
			AcquisitionValue: amounts[colAcquisition],
			OpeningValue:     amounts[colOpening],
			Additions:        amounts[colAdditions],
			Reductions:       amounts[colReductions],
			ClosingValue:     amounts[colClosing],
			BookValue:        amounts[colBook],
		},
	}, nil
}
