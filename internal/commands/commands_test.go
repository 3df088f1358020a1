package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/bmnledger/internal/commands"
)

// runBMN executes the CLI in-process and returns stdout and stderr.
func runBMN(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// initProject runs init in a fresh directory and returns it.
func initProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, _, err := runBMN(t, "init", dir)
	require.NoError(t, err)
	return dir
}

// writeXLSX saves rows to a new workbook, starting at A1 of the default sheet.
func writeXLSX(t *testing.T, path string, rows [][]any) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f := excelize.NewFile()
	defer f.Close()
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	require.NoError(t, f.SaveAs(path))
}

// openingReport is a small Saldo Awal report for organization 005.
func openingReport(year string) [][]any {
	rows := [][]any{
		{"LAPORAN SALDO AWAL BARANG MILIK NEGARA"},
	}
	if year != "" {
		rows = append(rows, []any{"TAHUN ANGGARAN " + year})
	}
	return append(rows,
		[]any{"UAPB", ":", "005", "DIRECTORATE X"},
		[]any{},
		[]any{"KODE", nil, nil, nil, "URAIAN", nil, nil, "NILAI"},
		[]any{"131111", nil, nil, nil, "Tanah", nil, nil, 1000000},
		[]any{"132111", nil, nil, nil, "Alat Besar", nil, nil, 250000.5},
		[]any{"JUMLAH", nil, nil, nil, nil, nil, nil, 1250000.5},
	)
}

// assetReport is a small Neraca report for organization 001.
func assetReport() [][]any {
	return [][]any{
		{"LAPORAN POSISI BMN DI NERACA"},
		{"UAKPB", ":", "001", "MAJELIS PERMUSYAWARATAN RAKYAT"},
		{},
		{nil, "131111", nil, nil, nil, "Tanah", nil, nil, 5000},
		{nil, "133111", nil, nil, nil, "Jalan", nil, nil, 7000},
	}
}

// depreciationReport is a small Penyusutan report for organization 005 whose
// only row has no additions or reductions.
func depreciationReport() [][]any {
	return [][]any{
		{"LAPORAN PENYUSUTAN BMN INTRAKOMPTABEL"},
		{"TAHUN ANGGARAN 2024"},
		{"UAPB", ":", "005", "DIRECTORATE X"},
		{},
		{"132111", nil, "Alat Besar", nil, nil, nil, 1000, 100, nil, nil, nil, nil, 50, 950},
	}
}

func decimalOf(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
