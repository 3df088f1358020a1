package importer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/bmnledger/internal/extract"
	"github.com/cleared-dev/bmnledger/internal/model"
	"github.com/cleared-dev/bmnledger/internal/workbook"
)

// Options controls a batch run.
type Options struct {
	// Workers bounds the number of files loaded at once. Values below one
	// run files one at a time.
	Workers int
	// Sheet selects a worksheet by name; empty means the first sheet.
	Sheet string
	// FiscalYear is passed to every extractor. Zero means not supplied.
	FiscalYear int
}

// Result is the outcome of extracting one file.
type Result struct {
	File     FileInfo
	Metadata model.ReportMetadata
	Entries  []model.LedgerEntry
	Err      error
}

// ExtractFile loads one file and extracts it as category c.
func ExtractFile(f FileInfo, c model.Category, opts Options) Result {
	res := Result{File: f}

	ex, err := extract.For(c)
	if err != nil {
		res.Err = err
		return res
	}

	g, err := workbook.Load(f.Path, workbook.Options{Sheet: opts.Sheet})
	if err != nil {
		res.Err = err
		return res
	}

	res.Metadata = extract.ScanMetadata(g)
	res.Entries = ex.Extract(g, f.Name, extract.Options{FiscalYear: opts.FiscalYear})
	return res
}

// Batch extracts files in parallel and returns one Result per file, in
// input order. Each file uses its detected Category; files without one fail
// with extract.ErrUnknownCategory. Per-file failures are reported in
// Result.Err. Cancelling ctx stops new files from starting; files not
// started report the context error, which Batch also returns.
func Batch(ctx context.Context, files []FileInfo, opts Options) ([]Result, error) {
	results := make([]Result, len(files))

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, f := range files {
		if err := gctx.Err(); err != nil {
			results[i] = Result{File: f, Err: fmt.Errorf("extracting %s: %w", f.Name, err)}
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{File: f, Err: fmt.Errorf("extracting %s: %w", f.Name, err)}
				return nil
			}
			results[i] = ExtractFile(f, f.Category, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
