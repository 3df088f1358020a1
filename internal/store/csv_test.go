package store

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/bmnledger/internal/model"
)

func TestMarshalRecord_ValueOnlyCategory(t *testing.T) {
	rec := Record{
		BatchID:     "b1",
		SourceFile:  "a.xlsx",
		LedgerEntry: entry(model.CategoryAssetPosition, "001", 2023, "131111", "1000.50"),
	}
	row := MarshalRecord(rec)
	require.Len(t, row, numFields)
	assert.Equal(t, "asset-position", row[colCategory])
	assert.Equal(t, "2023", row[colYear])
	assert.Equal(t, "1000.5", row[colValue])
	assert.Empty(t, row[colKind])
	assert.Empty(t, row[colBook])
}

func TestMarshalRecord_Depreciation(t *testing.T) {
	e := entry(model.CategoryDepreciation, "001", 2024, "132111", "750")
	e.Kind = model.KindExtra
	e.AcquisitionValue = dec("1000")
	e.ClosingValue = dec("250")
	e.BookValue = dec("750")

	row := MarshalRecord(Record{BatchID: "b1", LedgerEntry: e})
	assert.Equal(t, "EKSTRAKOMPTABEL", row[colKind])
	assert.Equal(t, "1000", row[colAcquisition])
	assert.Equal(t, "0", row[colAdditions])
	assert.Equal(t, "750", row[colBook])
}

func TestUnmarshalRecord_BlankAmountsAreZero(t *testing.T) {
	row := MarshalRecord(Record{LedgerEntry: entry(model.CategoryOpeningBalance, "002", 2023, "131111", "5")})
	rec, err := UnmarshalRecord(row)
	require.NoError(t, err)
	assert.True(t, rec.BookValue.IsZero())
	assert.Equal(t, model.Kind(""), rec.Kind)
	assert.True(t, rec.Value.Equal(dec("5")))
}

func TestUnmarshalRecord_Errors(t *testing.T) {
	good := MarshalRecord(Record{LedgerEntry: entry(model.CategoryAssetPosition, "001", 2023, "131111", "5")})

	badYear := append([]string(nil), good...)
	badYear[colYear] = "tahun"
	_, err := UnmarshalRecord(badYear)
	assert.ErrorContains(t, err, "fiscal_year")

	badValue := append([]string(nil), good...)
	badValue[colValue] = "1.2.3"
	_, err = UnmarshalRecord(badValue)
	assert.ErrorContains(t, err, "amount")

	_, err = UnmarshalRecord(good[:3])
	assert.ErrorContains(t, err, "expected 16 fields")
}

func TestWriteReadRecords(t *testing.T) {
	e := entry(model.CategoryDepreciation, "003", 2024, "132111", "750")
	e.Kind = model.KindIntra
	e.BookValue = dec("750")
	e.AccountName = "Peralatan, Mesin"

	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, []Record{{BatchID: "b1", SourceFile: "s.xls", LedgerEntry: e}}))
	assert.True(t, strings.HasPrefix(buf.String(), Header+"\n"))

	recs, err := ReadRecords(&buf)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Peralatan, Mesin", recs[0].AccountName)
	assert.Equal(t, model.KindIntra, recs[0].Kind)
	assert.True(t, recs[0].BookValue.Equal(dec("750")))
}

func TestReadRecords_Empty(t *testing.T) {
	recs, err := ReadRecords(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, recs)
}
