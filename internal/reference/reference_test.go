package reference

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/bmnledger/internal/extract"
	"github.com/cleared-dev/bmnledger/internal/model"
	"github.com/cleared-dev/bmnledger/internal/workbook"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_CSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "organizations.csv"),
		"kode_ba,uraian_ba\n1,MAJELIS PERMUSYAWARATAN RAKYAT\n005,MAHKAMAH AGUNG\n,tanpa kode\n")
	writeFile(t, filepath.Join(dir, "accounts.csv"),
		"kode_akun,uraian_akun,kategori\n131111,Tanah,Aset Tetap\n132111,Alat Besar,Aset Tetap\n117111,Barang Konsumsi,Persediaan\n")

	svc, err := Load(dir)
	require.NoError(t, err)
	assert.False(t, svc.Empty())

	require.Len(t, svc.Organizations(), 2)
	o, ok := svc.Org("001")
	require.True(t, ok)
	assert.Equal(t, "MAJELIS PERMUSYAWARATAN RAKYAT", o.Name)
	assert.True(t, svc.HasOrg("005"))

	assert.Len(t, svc.Accounts(), 3)
	a, ok := svc.Get("131111")
	require.True(t, ok)
	assert.Equal(t, "Tanah", a.Name)
	assert.Equal(t, "Aset Tetap", a.Category)
	assert.False(t, svc.Exists("999999"))
	assert.Len(t, svc.ByCategory("aset tetap"), 2)
}

func TestLoad_XLSX(t *testing.T) {
	dir := t.TempDir()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"kode_akun", "uraian_akun"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{131111, "Tanah"}))
	require.NoError(t, f.SaveAs(filepath.Join(dir, "accounts.xlsx")))
	require.NoError(t, f.Close())

	svc, err := Load(dir)
	require.NoError(t, err)
	assert.Empty(t, svc.Organizations())
	assert.True(t, svc.Exists("131111"))
}

func TestLoad_MissingDir(t *testing.T) {
	svc, err := Load(filepath.Join(t.TempDir(), "referensi"))
	require.NoError(t, err)
	assert.True(t, svc.Empty())

	svc, err = Load("")
	require.NoError(t, err)
	assert.True(t, svc.Empty())
}

func TestLoad_MissingColumns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "accounts.csv"), "kode,uraian\n131111,Tanah\n")

	_, err := Load(dir)
	require.Error(t, err)
	var missing *extract.MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"kode_akun", "uraian_akun"}, missing.Missing)
}

func TestReadAccounts_FloatCodes(t *testing.T) {
	g := model.GridFromStrings([][]string{
		{"kode_akun", "uraian_akun"},
		{"131111.0", "Tanah"},
		{"JUMLAH", ""},
	})
	accts, err := ReadAccounts(workbook.NewTable(g, 0))
	require.NoError(t, err)
	require.Len(t, accts, 1)
	assert.Equal(t, "131111", accts[0].Code)
	assert.Empty(t, accts[0].Category)
}

func TestOrgName(t *testing.T) {
	svc := NewService([]model.Organization{{Code: "001", Name: "MPR"}}, nil)
	assert.Equal(t, "MPR", svc.OrgName("001", "dari laporan"))
	assert.Equal(t, "dari laporan", svc.OrgName("002", "dari laporan"))
	assert.Equal(t, "Unknown", svc.OrgName("002", ""))
}
