// Package ingestlog keeps an append-only CSV record of ingested files.
package ingestlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cleared-dev/bmnledger/internal/model"
)

// Status is the outcome of ingesting one file.
type Status string

const (
	StatusStored Status = "stored"
	StatusEmpty  Status = "empty"
	StatusFailed Status = "failed"
)

// Entry is one row in the ingest log.
type Entry struct {
	Timestamp  time.Time
	File       string
	Category   model.Category
	OrgCode    string
	FiscalYear int
	Entries    int
	BatchID    string
	Status     Status
	Message    string
}

// FileName is the log file inside the log directory.
const FileName = "ingest-log.csv"

// Header is the CSV header for ingest-log.csv.
const Header = "timestamp,file,category,org_code,fiscal_year,entries,batch_id,status,message"

const (
	numFields     = 9
	colTimestamp  = 0
	colFile       = 1
	colCategory   = 2
	colOrgCode    = 3
	colFiscalYear = 4
	colEntries    = 5
	colBatchID    = 6
	colStatus     = 7
	colMessage    = 8
)

// MarshalEntry converts an Entry to a CSV row. A zero fiscal year is written empty.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colFile] = e.File
	row[colCategory] = string(e.Category)
	row[colOrgCode] = e.OrgCode
	if e.FiscalYear != 0 {
		row[colFiscalYear] = strconv.Itoa(e.FiscalYear)
	}
	row[colEntries] = strconv.Itoa(e.Entries)
	row[colBatchID] = e.BatchID
	row[colStatus] = string(e.Status)
	row[colMessage] = e.Message
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	var year int
	if record[colFiscalYear] != "" {
		year, err = strconv.Atoi(record[colFiscalYear])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing fiscal_year %q: %w", record[colFiscalYear], err)
		}
	}

	n, err := strconv.Atoi(record[colEntries])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing entries %q: %w", record[colEntries], err)
	}

	return Entry{
		Timestamp:  ts,
		File:       record[colFile],
		Category:   model.Category(record[colCategory]),
		OrgCode:    record[colOrgCode],
		FiscalYear: year,
		Entries:    n,
		BatchID:    record[colBatchID],
		Status:     Status(record[colStatus]),
		Message:    record[colMessage],
	}, nil
}

// Append writes entries to <logDir>/ingest-log.csv, creating the file and header if needed.
func Append(logDir string, entries []Entry) error {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(logDir, FileName)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening ingest log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <logDir>/ingest-log.csv.
// Returns an empty slice if the file does not exist.
func Read(logDir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(logDir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ingest log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ingest log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
