package commands

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bmnledger/internal/model"
)

func totalValue(entries []model.LedgerEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Value)
	}
	return sum
}

// formatAmount renders d with two decimals and comma thousands separators,
// e.g. 1234567.5 as "1,234,567.50".
func formatAmount(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
