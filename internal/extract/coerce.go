package extract

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bmnledger/internal/model"
)

// ParseDecimal reads a cell as a locale-neutral decimal. Empty cells return
// ErrNoValue; text that is not a plain decimal returns ErrNotNumeric.
func ParseDecimal(c model.Cell) (decimal.Decimal, error) {
	if d, ok := c.Decimal(); ok {
		return d, nil
	}
	if c.IsEmpty() {
		return decimal.Zero, ErrNoValue
	}
	s := strings.TrimSpace(c.String())
	if s == "" {
		return decimal.Zero, ErrNoValue
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	return d, nil
}

// DecimalOrZero reads a cell as a decimal, treating empty or invalid cells as zero.
func DecimalOrZero(c model.Cell) decimal.Decimal {
	d, err := ParseDecimal(c)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// IsDigits reports whether s is non-empty and made only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// DigitCode returns the trimmed cell text when it is present and all digits.
func DigitCode(c model.Cell) (string, bool) {
	if c.IsEmpty() {
		return "", false
	}
	s := strings.TrimSpace(c.String())
	if !IsDigits(s) {
		return "", false
	}
	return s, true
}

// RequireColumns checks that every required column appears in headers.
// Header names are compared after trimming. All missing names are reported,
// in the order they were required.
func RequireColumns(headers, required []string) error {
	have := make(map[string]bool, len(headers))
	for _, h := range headers {
		have[strings.TrimSpace(h)] = true
	}
	var missing []string
	for _, col := range required {
		if !have[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Missing: missing}
	}
	return nil
}

// PadOrgCode left-pads a numeric organization code to three digits.
func PadOrgCode(code string) string {
	if len(code) < 3 {
		return strings.Repeat("0", 3-len(code)) + code
	}
	return code
}
