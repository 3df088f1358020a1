package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bmnledger/internal/extract"
	"github.com/cleared-dev/bmnledger/internal/importer"
	"github.com/cleared-dev/bmnledger/internal/workbook"
)

func newInspectCommand(a *app) *cobra.Command {
	var rows int
	var sheet string

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the top rows of a report and what the header scan finds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if sheet == "" {
				sheet = a.cfg.Ingest.Sheet
			}
			return runInspect(cmd.OutOrStdout(), args[0], rows, sheet)
		},
	}

	cmd.Flags().IntVarP(&rows, "rows", "n", 15, "number of rows to show")
	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet name (default first sheet)")

	return cmd
}

func runInspect(w io.Writer, path string, rows int, sheet string) error {
	g, err := workbook.Load(path, workbook.Options{Sheet: sheet})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "File: %s (%d rows, %d columns)\n", filepath.Base(path), g.Len(), g.Width())

	if c, ok := importer.DetectCategory(path); ok {
		fmt.Fprintf(w, "Category: %s (%s)\n", c, c.SourceName())
	} else {
		fmt.Fprintln(w, "Category: not detected")
	}

	meta := extract.ScanMetadata(g)
	year := "not found"
	if meta.FiscalYear != nil {
		year = fmt.Sprint(*meta.FiscalYear)
	}
	fmt.Fprintf(w, "Organization: %s %s\n", meta.OrgCode, meta.OrgName)
	fmt.Fprintf(w, "Fiscal year: %s\n\n", year)

	n := min(rows, g.Len())
	for i := 0; i < n; i++ {
		r := g.Row(i)
		cells := make([]string, r.Len())
		for j := range cells {
			cells[j] = r.Cell(j).String()
		}
		fmt.Fprintf(w, "%3d | %s\n", i, strings.Join(cells, " | "))
	}
	return nil
}
