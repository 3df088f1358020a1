package ingestlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/bmnledger/internal/model"
)

var testTime = time.Date(2025, 3, 4, 9, 15, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp:  testTime,
		File:       "lap_bmn_nrc_001.xlsx",
		Category:   model.CategoryAssetPosition,
		OrgCode:    "001",
		FiscalYear: 2023,
		Entries:    42,
		BatchID:    "9b2f0c1e-batch",
		Status:     StatusStored,
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), Header+"\n"))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, testEntry(), entries[0])
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	failed := testEntry()
	failed.File = "rusak.xlsx"
	failed.Entries = 0
	failed.FiscalYear = 0
	failed.BatchID = ""
	failed.Status = StatusFailed
	failed.Message = "loading rusak.xlsx: zip: not a valid zip file"
	require.NoError(t, Append(dir, []Entry{failed}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, StatusStored, entries[0].Status)
	assert.Equal(t, StatusFailed, entries[1].Status)
	assert.Equal(t, 0, entries[1].FiscalYear)
	assert.Equal(t, failed.Message, entries[1].Message)

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "timestamp,"))
}

func TestRead_NoFile(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestUnmarshalEntry_Errors(t *testing.T) {
	good := MarshalEntry(testEntry())

	short := good[:4]
	_, err := UnmarshalEntry(short)
	assert.ErrorContains(t, err, "expected 9 fields")

	badTime := append([]string(nil), good...)
	badTime[colTimestamp] = "kemarin"
	_, err = UnmarshalEntry(badTime)
	assert.ErrorContains(t, err, "timestamp")

	badCount := append([]string(nil), good...)
	badCount[colEntries] = "banyak"
	_, err = UnmarshalEntry(badCount)
	assert.ErrorContains(t, err, "entries")
}
