package extract

import (
	"fmt"
	"strings"

	"github.com/cleared-dev/bmnledger/internal/model"
)

// For returns the extractor for category c.
func For(c model.Category) (Extractor, error) {
	switch c {
	case model.CategoryAssetPosition:
		return AssetPosition{}, nil
	case model.CategoryOpeningBalance:
		return OpeningBalance{}, nil
	case model.CategoryDepreciation:
		return Depreciation{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
}

// ForName parses name and returns the matching extractor.
func ForName(name string) (Extractor, error) {
	c, err := ParseCategory(name)
	if err != nil {
		return nil, err
	}
	return For(c)
}

// ParseCategory maps a category identifier or its report name (Neraca,
// Saldo Awal, Penyusutan) to a Category. Matching ignores case, and spaces
// or underscores stand in for hyphens.
func ParseCategory(name string) (model.Category, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer(" ", "-", "_", "-").Replace(key)

	switch key {
	case string(model.CategoryAssetPosition), "neraca":
		return model.CategoryAssetPosition, nil
	case string(model.CategoryOpeningBalance), "saldo-awal":
		return model.CategoryOpeningBalance, nil
	case string(model.CategoryDepreciation), "penyusutan":
		return model.CategoryDepreciation, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}
