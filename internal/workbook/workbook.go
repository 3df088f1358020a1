// Package workbook loads report files into headerless grids.
package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/bmnledger/internal/model"
)

// ErrUnsupportedFormat indicates a file extension the loader cannot read.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrNoSheet indicates a workbook without the requested sheet.
var ErrNoSheet = errors.New("sheet not found")

// LoadError wraps a failure to load a single file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Options selects what to read from a workbook.
type Options struct {
	// Sheet names the .xlsx sheet to read. Empty means the first sheet.
	// Legacy .xls files always read the first sheet.
	Sheet string
}

// Extensions lists the file extensions Load understands.
var Extensions = []string{".xlsx", ".xlsm", ".xls", ".csv"}

// Supported reports whether name has a loadable extension.
func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Load reads the file at path into a Grid.
func Load(path string, opts Options) (model.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Grid{}, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	g, err := Read(f, filepath.Base(path), opts)
	if err != nil {
		return model.Grid{}, &LoadError{Path: path, Err: err}
	}
	return g, nil
}

// Read decodes r into a Grid, choosing the format from name's extension.
func Read(r io.Reader, name string, opts Options) (model.Grid, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(r, opts.Sheet)
	case ".xls":
		data, rerr := io.ReadAll(r)
		if rerr != nil {
			return model.Grid{}, fmt.Errorf("reading xls: %w", rerr)
		}
		rows, err = readXLS(bytes.NewReader(data), opts.Sheet)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return model.Grid{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
	if err != nil {
		return model.Grid{}, err
	}
	return model.GridFromStrings(rows), nil
}
