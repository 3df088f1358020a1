package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bmnledger/internal/extract"
	"github.com/cleared-dev/bmnledger/internal/reference"
	"github.com/cleared-dev/bmnledger/internal/store"
)

type reportFlags struct {
	org      string
	year     int
	category string
	top      int
	format   string
}

func newReportCommand(a *app) *cobra.Command {
	var f reportFlags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize stored entries per organization, year and category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(a, cmd.OutOrStdout(), f)
		},
	}

	cmd.Flags().StringVar(&f.org, "org", "", "organization code")
	cmd.Flags().IntVar(&f.year, "year", 0, "fiscal year")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "report category")
	cmd.Flags().IntVar(&f.top, "top", 10, "number of top accounts to list per category and year (0 for all)")
	cmd.Flags().StringVar(&f.format, "format", "text", "output format: text or json")

	return cmd
}

type reportOutput struct {
	Totals        []reportTotal   `json:"totals"`
	SectionTotals []reportSection `json:"section_totals"`
	TopAccounts   []reportAccount `json:"top_accounts"`
	Records       int             `json:"records"`
}

type reportTotal struct {
	OrgCode    string `json:"org_code"`
	OrgName    string `json:"org_name"`
	FiscalYear int    `json:"fiscal_year"`
	Category   string `json:"category"`
	Entries    int    `json:"entries"`
	Value      string `json:"value"`
}

type reportSection struct {
	Category   string `json:"category"`
	FiscalYear int    `json:"fiscal_year"`
	Entries    int    `json:"entries"`
	Value      string `json:"value"`
}

type reportAccount struct {
	Category    string `json:"category"`
	FiscalYear  int    `json:"fiscal_year"`
	AccountCode string `json:"account_code"`
	AccountName string `json:"account_name"`
	Value       string `json:"value"`
}

func runReport(a *app, w io.Writer, f reportFlags) error {
	if f.format != "text" && f.format != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", f.format)
	}

	filter := store.Filter{OrgCode: f.org, FiscalYear: f.year}
	if f.org != "" && extract.IsDigits(f.org) {
		filter.OrgCode = extract.PadOrgCode(f.org)
	}
	if f.category != "" {
		c, err := extract.ParseCategory(f.category)
		if err != nil {
			return err
		}
		filter.Category = c
	}

	recs, err := store.New(a.path(a.cfg.Data.StorePath)).Query(filter)
	if err != nil {
		return err
	}

	refs, err := reference.Load(a.path(a.cfg.Data.ReferenceDir))
	if err != nil {
		return fmt.Errorf("loading reference data: %w", err)
	}

	out := reportOutput{
		Totals:        []reportTotal{},
		SectionTotals: []reportSection{},
		TopAccounts:   []reportAccount{},
		Records:       len(recs),
	}
	totals := store.Summarize(recs)
	sections := store.SectionTotals(recs)
	top := store.TopAccounts(recs, f.top)
	for _, t := range totals {
		out.Totals = append(out.Totals, reportTotal{
			OrgCode:    t.OrgCode,
			OrgName:    refs.OrgName(t.OrgCode, t.OrgName),
			FiscalYear: t.FiscalYear,
			Category:   string(t.Category),
			Entries:    t.Entries,
			Value:      t.Value.String(),
		})
	}
	for _, sec := range sections {
		out.SectionTotals = append(out.SectionTotals, reportSection{
			Category:   string(sec.Category),
			FiscalYear: sec.FiscalYear,
			Entries:    sec.Entries,
			Value:      sec.Value.String(),
		})
	}
	for _, acct := range top {
		name := acct.AccountName
		if ref, ok := refs.Get(acct.AccountCode); ok && ref.Name != "" {
			name = ref.Name
		}
		out.TopAccounts = append(out.TopAccounts, reportAccount{
			Category:    string(acct.Category),
			FiscalYear:  acct.FiscalYear,
			AccountCode: acct.AccountCode,
			AccountName: name,
			Value:       acct.Value.String(),
		})
	}

	if f.format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		return nil
	}

	if len(recs) == 0 {
		fmt.Fprintln(w, "No stored entries match.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ORG\tNAME\tYEAR\tCATEGORY\tENTRIES\tVALUE\t")
	for i, t := range totals {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%d\t%s\t\n",
			t.OrgCode, out.Totals[i].OrgName, t.FiscalYear, t.Category.SourceName(), t.Entries, formatAmount(t.Value))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	// One block per category and year: balances, opening balances and book
	// values of the same account overlap and must not be added up.
	for _, sec := range sections {
		fmt.Fprintf(w, "\n%s %d: %d entries, total value %s\n",
			sec.Category.SourceName(), sec.FiscalYear, sec.Entries, formatAmount(sec.Value))
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		rank := 0
		for i, acct := range top {
			if acct.Section != sec.Section {
				continue
			}
			rank++
			fmt.Fprintf(tw, "%2d.\t%s\t%s\t%s\n", rank, acct.AccountCode, out.TopAccounts[i].AccountName, formatAmount(acct.Value))
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	fmt.Fprintf(w, "\n%d records\n", len(recs))
	return nil
}
