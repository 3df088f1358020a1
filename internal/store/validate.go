package store

import (
	"fmt"

	"github.com/cleared-dev/bmnledger/internal/extract"
	"github.com/cleared-dev/bmnledger/internal/model"
)

// Rule identifies the check a ValidationError came from.
type Rule string

const (
	RuleFiscalYear     Rule = "fiscal-year"
	RuleAccountCode    Rule = "account-code"
	RuleCategory       Rule = "category"
	RuleUnknownAccount Rule = "unknown-account"
	RuleUnknownOrg     Rule = "unknown-org"
)

// ValidationError describes a single rejected or suspicious entry.
type ValidationError struct {
	Rule        Rule
	AccountCode string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Rule, e.AccountCode, e.Description)
}

// Fatal reports whether the error blocks a save.
func (e ValidationError) Fatal() bool {
	switch e.Rule {
	case RuleUnknownAccount, RuleUnknownOrg:
		return false
	}
	return true
}

// AccountChecker tests whether an account code exists in the reference list.
type AccountChecker interface {
	Exists(code string) bool
}

// OrgChecker tests whether an organization code exists in the reference list.
type OrgChecker interface {
	HasOrg(code string) bool
}

// ValidateEntries checks entries before they are stored. accounts and orgs
// may be nil, in which case reference checks are skipped.
func ValidateEntries(entries []model.LedgerEntry, accounts AccountChecker, orgs OrgChecker) []ValidationError {
	var errs []ValidationError
	for _, e := range entries {
		if e.FiscalYear == 0 {
			errs = append(errs, ValidationError{
				Rule:        RuleFiscalYear,
				AccountCode: e.AccountCode,
				Description: "fiscal year not resolved",
			})
		}
		if !extract.IsDigits(e.AccountCode) {
			errs = append(errs, ValidationError{
				Rule:        RuleAccountCode,
				AccountCode: e.AccountCode,
				Description: "account code must be digits",
			})
		}
		if _, err := extract.For(e.Category); err != nil {
			errs = append(errs, ValidationError{
				Rule:        RuleCategory,
				AccountCode: e.AccountCode,
				Description: err.Error(),
			})
		}
		if accounts != nil && !accounts.Exists(e.AccountCode) {
			errs = append(errs, ValidationError{
				Rule:        RuleUnknownAccount,
				AccountCode: e.AccountCode,
				Description: fmt.Sprintf("account %s not in reference list", e.AccountCode),
			})
		}
		if orgs != nil && e.OrgCode != model.UnknownOrgCode && !orgs.HasOrg(e.OrgCode) {
			errs = append(errs, ValidationError{
				Rule:        RuleUnknownOrg,
				AccountCode: e.AccountCode,
				Description: fmt.Sprintf("organization %s not in reference list", e.OrgCode),
			})
		}
	}
	return errs
}
