package importer

import (
	"path/filepath"
	"strings"

	"github.com/cleared-dev/bmnledger/internal/extract"
	"github.com/cleared-dev/bmnledger/internal/model"
)

// filePrefixes maps the SIMAK-BMN export file name prefixes to categories.
// Longer prefixes come first: lap_bmn_nrc_sawal also starts with lap_bmn_nrc.
var filePrefixes = []struct {
	prefix   string
	category model.Category
}{
	{"lap_bmn_nrc_sawal", model.CategoryOpeningBalance},
	{"lap_bmn_nrc", model.CategoryAssetPosition},
	{"lap_susut", model.CategoryDepreciation},
}

// DetectCategory guesses the report category of path from its file name,
// then from the names of its parent directories (Neraca, Saldo Awal,
// Penyusutan, or a category identifier).
func DetectCategory(path string) (model.Category, bool) {
	base := strings.ToLower(filepath.Base(path))
	for _, p := range filePrefixes {
		if strings.HasPrefix(base, p.prefix) {
			return p.category, true
		}
	}

	dir := filepath.Dir(filepath.FromSlash(path))
	for dir != "." && dir != string(filepath.Separator) && dir != "" {
		if c, err := extract.ParseCategory(filepath.Base(dir)); err == nil {
			return c, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}
