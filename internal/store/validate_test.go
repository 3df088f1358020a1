package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/bmnledger/internal/model"
)

type mockRefs struct {
	accounts map[string]bool
	orgs     map[string]bool
}

func (m mockRefs) Exists(code string) bool { return m.accounts[code] }
func (m mockRefs) HasOrg(code string) bool { return m.orgs[code] }

func TestValidateEntries_Clean(t *testing.T) {
	refs := mockRefs{accounts: map[string]bool{"131111": true}, orgs: map[string]bool{"001": true}}
	errs := ValidateEntries([]model.LedgerEntry{entry(model.CategoryAssetPosition, "001", 2023, "131111", "1")}, refs, refs)
	assert.Empty(t, errs)
}

func TestValidateEntries_Rules(t *testing.T) {
	refs := mockRefs{accounts: map[string]bool{}, orgs: map[string]bool{}}
	e := entry(model.Category("neraca-lama"), "009", 0, "13-11", "1")

	errs := ValidateEntries([]model.LedgerEntry{e}, refs, refs)
	rules := make(map[Rule]bool)
	for _, ve := range errs {
		rules[ve.Rule] = true
	}
	assert.True(t, rules[RuleFiscalYear])
	assert.True(t, rules[RuleAccountCode])
	assert.True(t, rules[RuleCategory])
	assert.True(t, rules[RuleUnknownAccount])
	assert.True(t, rules[RuleUnknownOrg])
}

func TestValidateEntries_UnknownOrgPlaceholderSkipped(t *testing.T) {
	refs := mockRefs{accounts: map[string]bool{"131111": true}, orgs: map[string]bool{}}
	e := entry(model.CategoryAssetPosition, model.UnknownOrgCode, 2023, "131111", "1")
	assert.Empty(t, ValidateEntries([]model.LedgerEntry{e}, refs, refs))
}

func TestValidationError_Fatal(t *testing.T) {
	errs := ValidateEntries([]model.LedgerEntry{entry(model.CategoryAssetPosition, "001", 2023, "999999", "1")},
		mockRefs{accounts: map[string]bool{}}, nil)
	require.Len(t, errs, 1)
	assert.False(t, errs[0].Fatal())
	assert.Contains(t, errs[0].Error(), "unknown-account [999999]")
}
