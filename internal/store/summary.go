package store

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bmnledger/internal/model"
)

// Total sums one report: an organization, year and category.
type Total struct {
	OrgCode    string
	OrgName    string
	FiscalYear int
	Category   model.Category
	Entries    int
	Value      decimal.Decimal
}

// Summarize totals records per organization, year and category, ordered by
// organization code, then year, then category.
func Summarize(recs []Record) []Total {
	idx := make(map[key]int)
	var totals []Total
	for _, rec := range recs {
		k := keyOf(rec.LedgerEntry)
		i, ok := idx[k]
		if !ok {
			i = len(totals)
			idx[k] = i
			totals = append(totals, Total{
				OrgCode:    rec.OrgCode,
				OrgName:    rec.OrgName,
				FiscalYear: rec.FiscalYear,
				Category:   rec.Category,
				Value:      decimal.Zero,
			})
		}
		totals[i].Entries++
		totals[i].Value = totals[i].Value.Add(rec.Value)
	}

	slices.SortFunc(totals, func(a, b Total) int {
		return cmp.Or(
			cmp.Compare(a.OrgCode, b.OrgCode),
			cmp.Compare(a.FiscalYear, b.FiscalYear),
			cmp.Compare(a.Category, b.Category),
		)
	})
	return totals
}

// Section is the slice of records sharing one category and fiscal year.
// Values of different sections measure different things and are never summed
// together.
type Section struct {
	Category   model.Category
	FiscalYear int
}

func sectionOf(e model.LedgerEntry) Section {
	return Section{Category: e.Category, FiscalYear: e.FiscalYear}
}

// compareSections orders sections by category display order, then year.
func compareSections(a, b Section) int {
	return cmp.Or(
		cmp.Compare(slices.Index(model.Categories(), a.Category), slices.Index(model.Categories(), b.Category)),
		cmp.Compare(a.Category, b.Category),
		cmp.Compare(a.FiscalYear, b.FiscalYear),
	)
}

// SectionTotal sums every record of one section.
type SectionTotal struct {
	Section
	Entries int
	Value   decimal.Decimal
}

// SectionTotals totals records per category and fiscal year, in category
// display order, then year.
func SectionTotals(recs []Record) []SectionTotal {
	idx := make(map[Section]int)
	var out []SectionTotal
	for _, rec := range recs {
		sec := sectionOf(rec.LedgerEntry)
		i, ok := idx[sec]
		if !ok {
			i = len(out)
			idx[sec] = i
			out = append(out, SectionTotal{Section: sec, Value: decimal.Zero})
		}
		out[i].Entries++
		out[i].Value = out[i].Value.Add(rec.Value)
	}

	slices.SortFunc(out, func(a, b SectionTotal) int {
		return compareSections(a.Section, b.Section)
	})
	return out
}

// AccountTotal is the summed value of one account code within a section.
type AccountTotal struct {
	Section
	AccountCode string
	AccountName string
	Value       decimal.Decimal
}

// TopAccounts sums values per section and account code and returns the n
// largest accounts of each section. n <= 0 returns all accounts. Sections
// follow SectionTotals order; within a section, ties order by account code.
func TopAccounts(recs []Record, n int) []AccountTotal {
	type acctKey struct {
		sec  Section
		code string
	}
	idx := make(map[acctKey]int)
	var all []AccountTotal
	for _, rec := range recs {
		k := acctKey{sectionOf(rec.LedgerEntry), rec.AccountCode}
		i, ok := idx[k]
		if !ok {
			i = len(all)
			idx[k] = i
			all = append(all, AccountTotal{Section: k.sec, AccountCode: rec.AccountCode, AccountName: rec.AccountName, Value: decimal.Zero})
		}
		all[i].Value = all[i].Value.Add(rec.Value)
	}

	slices.SortFunc(all, func(a, b AccountTotal) int {
		if c := compareSections(a.Section, b.Section); c != 0 {
			return c
		}
		if c := b.Value.Cmp(a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.AccountCode, b.AccountCode)
	})
	if n <= 0 {
		return all
	}

	var out []AccountTotal
	seen := 0
	for i, acct := range all {
		if i == 0 || acct.Section != all[i-1].Section {
			seen = 0
		}
		if seen < n {
			out = append(out, acct)
		}
		seen++
	}
	return out
}
