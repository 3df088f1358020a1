package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/bmnledger/internal/model"
)

func TestScanMetadata_Defaults(t *testing.T) {
	g := grid(
		row("LAPORAN BARANG MILIK NEGARA"),
		row(),
		row("KODE", "URAIAN", "NILAI"),
	)
	meta := ScanMetadata(g)
	assert.Equal(t, "000", meta.OrgCode)
	assert.Equal(t, "Unknown", meta.OrgName)
	assert.Nil(t, meta.FiscalYear)
}

func TestScanMetadata_EmptyGrid(t *testing.T) {
	assert.Equal(t, model.DefaultMetadata(), ScanMetadata(model.Grid{}))
}

func TestScanMetadata_OrgRow(t *testing.T) {
	g := grid(
		row("LAPORAN POSISI BMN DI NERACA"),
		row(),
		row("SEMESTER II"),
		row("UAPB", ":", "005", "DIRECTORATE X"),
		row("KODE", "URAIAN"),
	)
	meta := ScanMetadata(g)
	assert.Equal(t, "005", meta.OrgCode)
	assert.Equal(t, "DIRECTORATE X", meta.OrgName)
}

func TestScanMetadata_OrgInSingleCell(t *testing.T) {
	g := grid(row("UAKPB : 001 MAJELIS PERMUSYAWARATAN RAKYAT"))
	meta := ScanMetadata(g)
	assert.Equal(t, "001", meta.OrgCode)
	assert.Equal(t, "MAJELIS PERMUSYAWARATAN RAKYAT", meta.OrgName)
}

func TestScanMetadata_ShortCodePadded(t *testing.T) {
	g := grid(row("UAPB", ":", "5", "KEMENTERIAN X"))
	meta := ScanMetadata(g)
	assert.Equal(t, "005", meta.OrgCode)
	// The padded code does not occur in the row, so no name is taken.
	assert.Equal(t, "Unknown", meta.OrgName)
}

func TestScanMetadata_NumericCodeCell(t *testing.T) {
	g := grid(row("UAPB :", 12, "BADAN PUSAT"))
	meta := ScanMetadata(g)
	assert.Equal(t, "012", meta.OrgCode)
}

func TestScanMetadata_FloatLikeCode(t *testing.T) {
	g := grid(row("UAPB", "123.0", "BADAN PUSAT STATISTIK"))
	meta := ScanMetadata(g)
	assert.Equal(t, "123", meta.OrgCode)
}

func TestScanMetadata_CellsBeforeMarkerIgnored(t *testing.T) {
	g := grid(row("HALAMAN 99", "UAPB", "001", "SEKRETARIAT JENDERAL"))
	meta := ScanMetadata(g)
	assert.Equal(t, "001", meta.OrgCode)
	assert.Equal(t, "SEKRETARIAT JENDERAL", meta.OrgName)
}

func TestScanMetadata_ShortNameRejected(t *testing.T) {
	g := grid(row("UAPB", ":", "007", "AB"))
	meta := ScanMetadata(g)
	assert.Equal(t, "007", meta.OrgCode)
	assert.Equal(t, "Unknown", meta.OrgName)
}

func TestScanMetadata_FirstMarkerRowWins(t *testing.T) {
	g := grid(
		row("UAPB", ":", "010", "KEMENTERIAN PERTAMA"),
		row("UAKPB", ":", "020", "SATUAN KERJA KEDUA"),
	)
	meta := ScanMetadata(g)
	assert.Equal(t, "010", meta.OrgCode)
	assert.Equal(t, "KEMENTERIAN PERTAMA", meta.OrgName)
}

func TestScanMetadata_MarkerWithoutCodeStopsScan(t *testing.T) {
	g := grid(
		row("UAPB", ":", "-"),
		row("UAPB", ":", "030", "TIDAK DIBACA"),
	)
	meta := ScanMetadata(g)
	assert.Equal(t, "000", meta.OrgCode)
	assert.Equal(t, "Unknown", meta.OrgName)
}

func TestScanMetadata_OnlyFirstTenRows(t *testing.T) {
	rows := blankRows(10)
	rows = append(rows, row("UAPB", ":", "005", "DIRECTORATE X"))
	meta := ScanMetadata(grid(rows...))
	assert.Equal(t, "000", meta.OrgCode)
	assert.Equal(t, "Unknown", meta.OrgName)
}

func TestScanMetadata_FiscalYear(t *testing.T) {
	tests := []struct {
		name string
		row  model.Row
		want int
	}{
		{"single cell", row("TAHUN ANGGARAN 2024"), 2024},
		{"separate cell", row("TAHUN ANGGARAN", ":", "2023"), 2023},
		{"numeric cell", row("TAHUN ANGGARAN", 2022), 2022},
		{"colon glued", row("TAHUN ANGGARAN", ":2021"), 2021},
		{"lower case marker", row("Tahun Anggaran 2025"), 2025},
		{"embedded with colon", row("TAHUN ANGGARAN: 2020"), 2020},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := ScanMetadata(grid(tt.row))
			require.NotNil(t, meta.FiscalYear)
			assert.Equal(t, tt.want, *meta.FiscalYear)
		})
	}
}

func TestScanMetadata_FiscalYearRejected(t *testing.T) {
	tests := []struct {
		name string
		row  model.Row
	}{
		{"no marker", row("PERIODE", "2024")},
		{"out of range", row("TAHUN ANGGARAN", "1999")},
		{"too long", row("TAHUN ANGGARAN", "20245")},
		{"no year", row("TAHUN ANGGARAN", ":")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, ScanMetadata(grid(tt.row)).FiscalYear)
		})
	}
}

func TestScanMetadata_FirstYearWins(t *testing.T) {
	g := grid(
		row("TAHUN ANGGARAN 2023"),
		row("TAHUN ANGGARAN 2024"),
	)
	meta := ScanMetadata(g)
	require.NotNil(t, meta.FiscalYear)
	assert.Equal(t, 2023, *meta.FiscalYear)
}

func TestScanMetadata_YearAndOrgSameRow(t *testing.T) {
	g := grid(row("TAHUN ANGGARAN 2024", "UAPB", ":", "001", "MPR"))
	meta := ScanMetadata(g)
	require.NotNil(t, meta.FiscalYear)
	assert.Equal(t, 2024, *meta.FiscalYear)
	assert.Equal(t, "001", meta.OrgCode)
	assert.Equal(t, "MPR", meta.OrgName)
}

func TestScanMetadata_YearAfterOrgRowNotSearched(t *testing.T) {
	g := grid(
		row("UAPB", ":", "001", "MPR"),
		row("TAHUN ANGGARAN 2024"),
	)
	meta := ScanMetadata(g)
	assert.Nil(t, meta.FiscalYear)
	assert.Equal(t, "001", meta.OrgCode)
}

func TestScanMetadata_Idempotent(t *testing.T) {
	g := grid(
		row("TAHUN ANGGARAN 2024"),
		row("UAPB", ":", "005", "DIRECTORATE X"),
	)
	first := ScanMetadata(g)
	second := ScanMetadata(g)
	assert.Equal(t, first, second)
	assert.Equal(t, "005", first.OrgCode)
}
