// Package store persists extracted ledger entries in a single CSV file.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/cleared-dev/bmnledger/internal/model"
)

// ErrUnresolvedYear is returned when a batch holds an entry with no fiscal year.
var ErrUnresolvedYear = errors.New("fiscal year not resolved")

// Store reads and writes the extracted entry file.
type Store struct {
	path    string
	batchID func() string
}

// New creates a Store backed by the CSV file at path.
func New(path string) *Store {
	return &Store{path: path, batchID: uuid.NewString}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Batch is one file's worth of entries.
type Batch struct {
	SourceFile string
	Entries    []model.LedgerEntry
}

// SaveResult reports what a Save did.
type SaveResult struct {
	BatchID  string
	Written  int
	Replaced int
}

// key identifies a report: one organization, year and category.
type key struct {
	year     int
	org      string
	category model.Category
}

func keyOf(e model.LedgerEntry) key {
	return key{year: e.FiscalYear, org: e.OrgCode, category: e.Category}
}

// Save validates b, assigns it a batch ID, and writes it. Stored rows that
// share a (fiscal year, organization, category) with the batch are replaced,
// so re-ingesting a report never duplicates it.
func (s *Store) Save(b Batch) (SaveResult, error) {
	if len(b.Entries) == 0 {
		return SaveResult{}, nil
	}

	for _, ve := range ValidateEntries(b.Entries, nil, nil) {
		if ve.Rule == RuleFiscalYear {
			return SaveResult{}, fmt.Errorf("saving %s: %w", b.SourceFile, ErrUnresolvedYear)
		}
		if ve.Fatal() {
			return SaveResult{}, fmt.Errorf("saving %s: %w", b.SourceFile, ve)
		}
	}

	existing, err := s.All()
	if err != nil {
		return SaveResult{}, err
	}

	keys := make(map[key]bool)
	for _, e := range b.Entries {
		keys[keyOf(e)] = true
	}

	res := SaveResult{BatchID: s.batchID(), Written: len(b.Entries)}
	kept := existing[:0]
	for _, rec := range existing {
		if keys[keyOf(rec.LedgerEntry)] {
			res.Replaced++
			continue
		}
		kept = append(kept, rec)
	}

	for _, e := range b.Entries {
		kept = append(kept, Record{BatchID: res.BatchID, SourceFile: b.SourceFile, LedgerEntry: e})
	}

	if err := s.write(kept); err != nil {
		return SaveResult{}, err
	}
	return res, nil
}

// All returns every stored record in file order. A missing file is empty.
func (s *Store) All() ([]Record, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.path, err)
	}
	defer f.Close()

	recs, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	return recs, nil
}

// Filter narrows a Query. Zero fields match everything.
type Filter struct {
	OrgCode    string
	FiscalYear int
	Category   model.Category
	BatchID    string
}

// Match reports whether rec passes f.
func (f Filter) Match(rec Record) bool {
	if f.OrgCode != "" && rec.OrgCode != f.OrgCode {
		return false
	}
	if f.FiscalYear != 0 && rec.FiscalYear != f.FiscalYear {
		return false
	}
	if f.Category != "" && rec.Category != f.Category {
		return false
	}
	if f.BatchID != "" && rec.BatchID != f.BatchID {
		return false
	}
	return true
}

// Query returns stored records matching f.
func (s *Store) Query(f Filter) ([]Record, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	var out []Record
	for _, rec := range all {
		if f.Match(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Delete removes records matching f and returns how many were removed.
func (s *Store) Delete(f Filter) (int, error) {
	all, err := s.All()
	if err != nil {
		return 0, err
	}
	kept := all[:0]
	removed := 0
	for _, rec := range all {
		if f.Match(rec) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, s.write(kept)
}

// write replaces the store file through a temporary file in the same directory.
func (s *Store) write(recs []Record) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".entries-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteRecords(tmp, recs); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}
