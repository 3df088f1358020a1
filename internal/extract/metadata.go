package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cleared-dev/bmnledger/internal/model"
)

// headerRows is how many leading rows are searched for report metadata.
const headerRows = 10

const (
	fiscalYearMarker = "TAHUN ANGGARAN"
	minFiscalYear    = 2000
	maxFiscalYear    = 2099
)

// orgMarkers introduce the organization unit (UAPB = ministry level,
// UAKPB = work unit level).
var orgMarkers = []string{"UAPB", "UAKPB"}

var embeddedYear = regexp.MustCompile(`20\d{2}`)

// yearSeparators are stripped from a cell before testing it as a bare year.
var yearSeparators = strings.NewReplacer(":", "", ".", "", ",", "", "-", "", "/", "", " ", "", "\t", "")

// ScanMetadata searches the first rows of g for the organization code, the
// organization name and the fiscal year. Anything not found keeps its default.
// The scan stops at the first row carrying an organization marker.
func ScanMetadata(g model.Grid) model.ReportMetadata {
	meta := model.DefaultMetadata()

	for i := 0; i < min(headerRows, g.Len()); i++ {
		values := g.Row(i).Values()
		probe := strings.Join(values, " ")

		if meta.FiscalYear == nil {
			if year, ok := scanFiscalYear(values, probe); ok {
				meta.FiscalYear = &year
			}
		}

		if !containsAny(probe, orgMarkers) {
			continue
		}
		meta.OrgCode, meta.OrgName = scanOrganization(values, probe)
		break
	}

	return meta
}

func scanFiscalYear(values []string, probe string) (int, bool) {
	if !strings.Contains(strings.ToUpper(probe), fiscalYearMarker) {
		return 0, false
	}
	for _, v := range values {
		if bare := yearSeparators.Replace(v); len(bare) == 4 && IsDigits(bare) {
			if year, ok := fiscalYear(bare); ok {
				return year, true
			}
		}
		if strings.Contains(strings.ToUpper(v), fiscalYearMarker) {
			if m := embeddedYear.FindString(v); m != "" {
				if year, ok := fiscalYear(m); ok {
					return year, true
				}
			}
		}
	}
	return 0, false
}

func fiscalYear(s string) (int, bool) {
	year, err := strconv.Atoi(s)
	if err != nil || year < minFiscalYear || year > maxFiscalYear {
		return 0, false
	}
	return year, true
}

// scanOrganization reads the code and name from a row known to carry an
// organization marker. Cells before the first marker are ignored.
func scanOrganization(values []string, probe string) (code, name string) {
	code, name = model.UnknownOrgCode, model.UnknownOrgName

	found := false
	inScope := false
	for _, v := range values {
		if containsAny(v, orgMarkers) {
			inScope = true
		}
		if !inScope || found {
			continue
		}
		for _, tok := range strings.Fields(stripMarkers(v)) {
			tok = strings.TrimSuffix(tok, ".0")
			if IsDigits(tok) {
				code = PadOrgCode(tok)
				found = true
				break
			}
		}
	}
	if !found {
		return code, name
	}

	// The name is whatever follows the code in the joined row. A padded code
	// that does not appear verbatim leaves the name unknown.
	if _, rest, ok := strings.Cut(probe, code); ok {
		rest = strings.TrimSpace(strings.ReplaceAll(strings.TrimSpace(rest), ":", ""))
		if utf8.RuneCountInString(rest) > 2 {
			name = rest
		}
	}
	return code, name
}

func stripMarkers(s string) string {
	s = strings.ReplaceAll(s, ":", " ")
	for _, m := range orgMarkers {
		s = strings.ReplaceAll(s, m, "")
	}
	return s
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
