// Package reference provides lookups over the organization and account
// reference lists kept next to the imported reports.
package reference

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/bmnledger/internal/extract"
	"github.com/cleared-dev/bmnledger/internal/model"
	"github.com/cleared-dev/bmnledger/internal/workbook"
)

// Base names of the reference sheets inside the reference directory. Any
// extension the workbook loader supports is accepted.
const (
	OrganizationsFile = "organizations"
	AccountsFile      = "accounts"
)

// Column names of the reference sheets.
const (
	ColOrgCode         = "kode_ba"
	ColOrgName         = "uraian_ba"
	ColAccountCode     = "kode_akun"
	ColAccountName     = "uraian_akun"
	ColAccountCategory = "kategori"
)

// Service provides in-memory lookup over organizations and accounts.
type Service struct {
	orgs     []model.Organization
	byOrg    map[string]model.Organization
	accounts []model.Account
	byCode   map[string]model.Account
}

// NewService creates a Service from organizations and accounts.
func NewService(orgs []model.Organization, accounts []model.Account) *Service {
	byOrg := make(map[string]model.Organization, len(orgs))
	for _, o := range orgs {
		byOrg[o.Code] = o
	}
	byCode := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byCode[a.Code] = a
	}
	return &Service{orgs: orgs, byOrg: byOrg, accounts: accounts, byCode: byCode}
}

// Load reads the reference sheets from dir. A missing directory or sheet
// yields an empty list rather than an error.
func Load(dir string) (*Service, error) {
	if dir == "" {
		return NewService(nil, nil), nil
	}

	var orgs []model.Organization
	path, err := find(dir, OrganizationsFile)
	if err != nil {
		return nil, err
	}
	if path != "" {
		t, err := loadTable(path)
		if err != nil {
			return nil, err
		}
		if orgs, err = ReadOrganizations(t); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	var accts []model.Account
	path, err = find(dir, AccountsFile)
	if err != nil {
		return nil, err
	}
	if path != "" {
		t, err := loadTable(path)
		if err != nil {
			return nil, err
		}
		if accts, err = ReadAccounts(t); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	return NewService(orgs, accts), nil
}

// find returns the first supported file named base in dir, or "".
func find(dir, base string) (string, error) {
	for _, ext := range workbook.Extensions {
		path := filepath.Join(dir, base+ext)
		_, err := os.Stat(path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("checking %s: %w", path, err)
		}
	}
	return "", nil
}

func loadTable(path string) (workbook.Table, error) {
	g, err := workbook.Load(path, workbook.Options{})
	if err != nil {
		return workbook.Table{}, err
	}
	return workbook.NewTable(g, 0), nil
}

// ReadOrganizations reads organizations from a table with kode_ba and
// uraian_ba columns. Codes are padded to three digits; rows without a
// numeric code are skipped.
func ReadOrganizations(t workbook.Table) ([]model.Organization, error) {
	if err := t.Require(ColOrgCode, ColOrgName); err != nil {
		return nil, err
	}
	var orgs []model.Organization
	for i := 0; i < t.Len(); i++ {
		code, ok := readCode(t.Cell(i, ColOrgCode))
		if !ok {
			continue
		}
		orgs = append(orgs, model.Organization{
			Code: extract.PadOrgCode(code),
			Name: strings.TrimSpace(t.Cell(i, ColOrgName).String()),
		})
	}
	return orgs, nil
}

// ReadAccounts reads accounts from a table with kode_akun and uraian_akun
// columns and an optional kategori column.
func ReadAccounts(t workbook.Table) ([]model.Account, error) {
	if err := t.Require(ColAccountCode, ColAccountName); err != nil {
		return nil, err
	}
	var accts []model.Account
	for i := 0; i < t.Len(); i++ {
		code, ok := readCode(t.Cell(i, ColAccountCode))
		if !ok {
			continue
		}
		a := model.Account{
			Code: code,
			Name: strings.TrimSpace(t.Cell(i, ColAccountName).String()),
		}
		if t.Has(ColAccountCategory) {
			a.Category = strings.TrimSpace(t.Cell(i, ColAccountCategory).String())
		}
		accts = append(accts, a)
	}
	return accts, nil
}

// readCode reads a digit code, accepting the "123.0" spelling spreadsheets give
// whole numbers.
func readCode(c model.Cell) (string, bool) {
	s := strings.TrimSuffix(strings.TrimSpace(c.String()), ".0")
	if !extract.IsDigits(s) {
		return "", false
	}
	return s, true
}

// Organizations returns all organizations.
func (s *Service) Organizations() []model.Organization {
	return s.orgs
}

// Accounts returns all accounts.
func (s *Service) Accounts() []model.Account {
	return s.accounts
}

// Empty reports whether no reference data was loaded.
func (s *Service) Empty() bool {
	return len(s.orgs) == 0 && len(s.accounts) == 0
}

// Get returns an account by code.
func (s *Service) Get(code string) (model.Account, bool) {
	a, ok := s.byCode[code]
	return a, ok
}

// Exists reports whether an account code exists.
func (s *Service) Exists(code string) bool {
	_, ok := s.byCode[code]
	return ok
}

// Org returns an organization by code.
func (s *Service) Org(code string) (model.Organization, bool) {
	o, ok := s.byOrg[code]
	return o, ok
}

// HasOrg reports whether an organization code exists.
func (s *Service) HasOrg(code string) bool {
	_, ok := s.byOrg[code]
	return ok
}

// OrgName resolves an organization name, preferring the reference list over
// fallback. The placeholder name is returned when neither has one.
func (s *Service) OrgName(code, fallback string) string {
	if o, ok := s.byOrg[code]; ok && o.Name != "" {
		return o.Name
	}
	if fallback != "" {
		return fallback
	}
	return model.UnknownOrgName
}

// ByCategory returns accounts whose kategori matches category, ignoring case.
func (s *Service) ByCategory(category string) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if strings.EqualFold(a.Category, category) {
			result = append(result, a)
		}
	}
	return result
}
