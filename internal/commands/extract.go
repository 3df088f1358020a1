package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bmnledger/internal/extract"
	"github.com/cleared-dev/bmnledger/internal/importer"
	"github.com/cleared-dev/bmnledger/internal/model"
	"github.com/cleared-dev/bmnledger/internal/store"
)

type extractFlags struct {
	category string
	year     int
	sheet    string
	format   string
	output   string
}

func newExtractCommand(a *app) *cobra.Command {
	var f extractFlags

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract ledger entries from one report and print them",
		Long: `Extract ledger entries from one BMN report (.xlsx, .xls or .csv).

The category is taken from --category, or detected from the file name
(lap_bmn_nrc, lap_bmn_nrc_sawal, lap_susut) or its directory
(Neraca, Saldo Awal, Penyusutan).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(a, cmd.OutOrStdout(), args[0], f)
		},
	}

	cmd.Flags().StringVarP(&f.category, "category", "c", "", "report category (asset-position, opening-balance, depreciation)")
	cmd.Flags().IntVar(&f.year, "year", 0, "fiscal year when the report does not state one")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "worksheet name (default first sheet)")
	cmd.Flags().StringVar(&f.format, "format", "json", "output format: json or csv")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write to file instead of stdout")

	return cmd
}

func runExtract(a *app, stdout io.Writer, path string, f extractFlags) error {
	if f.format != "json" && f.format != "csv" {
		return fmt.Errorf("unknown format %q (want json or csv)", f.format)
	}

	c, err := resolveCategory(f.category, path)
	if err != nil {
		return err
	}

	sheet := f.sheet
	if sheet == "" {
		sheet = a.cfg.Ingest.Sheet
	}

	file := importer.FileInfo{Name: filepath.Base(path), Path: path, Category: c}
	res := importer.ExtractFile(file, c, importer.Options{Sheet: sheet, FiscalYear: a.fiscalYear(f.year)})
	if res.Err != nil {
		return res.Err
	}

	log := a.log.With("file", file.Name, "category", string(c))
	if len(res.Entries) == 0 {
		log.Warn("no data extracted", "org_code", res.Metadata.OrgCode)
	} else {
		log.Info("extracted",
			"entries", len(res.Entries),
			"org_code", res.Entries[0].OrgCode,
			"fiscal_year", res.Entries[0].FiscalYear,
			"total_value", totalValue(res.Entries).String(),
		)
	}

	if f.output == "" {
		return writeEntries(stdout, file.Name, res.Entries, f.format)
	}
	out, err := os.Create(f.output)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	return writeAndClose(out, file.Name, res.Entries, f.format)
}

// writeAndClose writes entries to wc and closes it. The close error is
// returned when the write succeeded.
func writeAndClose(wc io.WriteCloser, source string, entries []model.LedgerEntry, format string) error {
	if err := writeEntries(wc, source, entries, format); err != nil {
		_ = wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}

// writeEntries writes entries as indented JSON, or as store CSV records
// tagged with source.
func writeEntries(w io.Writer, source string, entries []model.LedgerEntry, format string) error {
	if format == "csv" {
		recs := make([]store.Record, len(entries))
		for i, e := range entries {
			recs[i] = store.Record{SourceFile: source, LedgerEntry: e}
		}
		return store.WriteRecords(w, recs)
	}

	if entries == nil {
		entries = []model.LedgerEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encoding entries: %w", err)
	}
	return nil
}

// resolveCategory parses flag when given, else detects the category from path.
func resolveCategory(flag, path string) (model.Category, error) {
	if flag != "" {
		return extract.ParseCategory(flag)
	}
	if c, ok := importer.DetectCategory(path); ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: cannot detect category of %s, use --category", extract.ErrUnknownCategory, filepath.Base(path))
}
