package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bmnledger/internal/extract"
	"github.com/cleared-dev/bmnledger/internal/gitops"
	"github.com/cleared-dev/bmnledger/internal/importer"
	"github.com/cleared-dev/bmnledger/internal/ingestlog"
	"github.com/cleared-dev/bmnledger/internal/logging"
	"github.com/cleared-dev/bmnledger/internal/model"
	"github.com/cleared-dev/bmnledger/internal/reference"
	"github.com/cleared-dev/bmnledger/internal/store"
)

type ingestFlags struct {
	category string
	year     int
	workers  int
	dryRun   bool
}

func newIngestCommand(a *app) *cobra.Command {
	var f ingestFlags

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Extract every report in the import directory into the entry store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd.Context(), a, cmd.OutOrStdout(), f)
		},
	}

	cmd.Flags().StringVarP(&f.category, "category", "c", "", "treat every file as this category instead of detecting it")
	cmd.Flags().IntVar(&f.year, "year", 0, "fiscal year when a report does not state one")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "files extracted in parallel (default from config)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "extract and validate without writing anything")

	return cmd
}

// ingestSummary counts the outcome of a run.
type ingestSummary struct {
	files   int
	stored  int
	empty   int
	failed  int
	entries int
}

func runIngest(ctx context.Context, a *app, stdout io.Writer, f ingestFlags) error {
	importDir := a.path(a.cfg.Data.ImportDir)
	files, err := importer.Scan(importDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(stdout, "No report files in %s\n", importDir)
		return nil
	}

	if f.category != "" {
		c, err := extract.ParseCategory(f.category)
		if err != nil {
			return err
		}
		for i := range files {
			files[i].Category = c
		}
	}

	refs, err := reference.Load(a.path(a.cfg.Data.ReferenceDir))
	if err != nil {
		return fmt.Errorf("loading reference data: %w", err)
	}

	workers := f.workers
	if workers == 0 {
		workers = a.cfg.Ingest.Workers
	}
	results, batchErr := importer.Batch(ctx, files, importer.Options{
		Workers:    workers,
		Sheet:      a.cfg.Ingest.Sheet,
		FiscalYear: a.fiscalYear(f.year),
	})

	st := store.New(a.path(a.cfg.Data.StorePath))
	sum := ingestSummary{files: len(files)}
	var logEntries []ingestlog.Entry
	storedBy := make(map[reportKey]string)

	for _, res := range results {
		le := ingestlog.Entry{
			Timestamp: time.Now().UTC(),
			File:      res.File.Name,
			Category:  res.File.Category,
			OrgCode:   res.Metadata.OrgCode,
			Entries:   len(res.Entries),
		}
		log := a.log.With("file", res.File.Name, "category", string(res.File.Category))

		switch {
		case res.Err != nil:
			sum.failed++
			le.Status = ingestlog.StatusFailed
			le.Message = res.Err.Error()
			log.Error("extraction failed", "error", res.Err)

		case len(res.Entries) == 0:
			sum.empty++
			le.Status = ingestlog.StatusEmpty
			log.Warn("no data extracted", "org_code", res.Metadata.OrgCode)

		default:
			le.FiscalYear = res.Entries[0].FiscalYear
			warnReferences(log, res, refs)

			if f.dryRun {
				sum.stored++
				sum.entries += len(res.Entries)
				log.Info("extracted (dry run)", "entries", len(res.Entries), "org_code", le.OrgCode, "fiscal_year", le.FiscalYear)
				continue
			}

			saved, err := st.Save(store.Batch{SourceFile: res.File.Name, Entries: res.Entries})
			if err != nil {
				sum.failed++
				le.Status = ingestlog.StatusFailed
				le.Message = err.Error()
				if errors.Is(err, store.ErrUnresolvedYear) {
					log.Error("fiscal year not found, use --year or ingest.default_fiscal_year", "org_code", le.OrgCode)
				} else {
					log.Error("saving entries failed", "error", err)
				}
				break
			}

			sum.stored++
			sum.entries += saved.Written
			le.Status = ingestlog.StatusStored
			le.BatchID = saved.BatchID

			bctx := logging.WithBatchID(ctx, saved.BatchID)
			if earlier, ok := earlierSource(storedBy, res.Entries); ok && saved.Replaced > 0 {
				log.WarnContext(bctx, "replaced entries stored from another file in this run",
					"earlier_file", earlier,
					"replaced", saved.Replaced,
					"org_code", le.OrgCode,
					"fiscal_year", le.FiscalYear,
				)
			}
			for _, e := range res.Entries {
				storedBy[reportKeyOf(e)] = res.File.Name
			}
			log.InfoContext(bctx, "stored",
				"entries", saved.Written,
				"replaced", saved.Replaced,
				"org_code", le.OrgCode,
				"fiscal_year", le.FiscalYear,
				"total_value", totalValue(res.Entries).String(),
			)

			if a.cfg.Ingest.MoveProcessed {
				if err := importer.MarkProcessed(importDir, res.File.Name); err != nil {
					log.WarnContext(bctx, "could not move file to processed", "error", err)
				}
			}
		}

		logEntries = append(logEntries, le)
	}

	if !f.dryRun && len(logEntries) > 0 {
		if err := ingestlog.Append(a.path(a.cfg.Data.LogDir), logEntries); err != nil {
			a.log.Warn("failed to write ingest log", "error", err)
		}
	}

	if !f.dryRun && a.cfg.History.AutoCommit && sum.stored > 0 {
		commitIngest(ctx, a, sum)
	}

	fmt.Fprintf(stdout, "Ingested %d of %d files (%d entries, %d empty, %d failed)\n",
		sum.stored, sum.files, sum.entries, sum.empty, sum.failed)

	if batchErr != nil {
		return fmt.Errorf("ingest interrupted: %w", batchErr)
	}
	if sum.failed > 0 {
		return fmt.Errorf("%d of %d files failed", sum.failed, sum.files)
	}
	return nil
}

// reportKey identifies one stored report: an organization, year and
// category. Saving a second report with the same key replaces the first.
type reportKey struct {
	org      string
	year     int
	category model.Category
}

func reportKeyOf(e model.LedgerEntry) reportKey {
	return reportKey{org: e.OrgCode, year: e.FiscalYear, category: e.Category}
}

// earlierSource returns the file that already stored one of the reports in
// entries during this run.
func earlierSource(storedBy map[reportKey]string, entries []model.LedgerEntry) (string, bool) {
	for _, e := range entries {
		if name, ok := storedBy[reportKeyOf(e)]; ok {
			return name, true
		}
	}
	return "", false
}

// warnReferences logs entries whose account or organization is missing from
// the reference lists. Nothing is checked when no reference data exists.
func warnReferences(log *slog.Logger, res importer.Result, refs *reference.Service) {
	if refs.Empty() {
		return
	}
	var accounts store.AccountChecker
	if len(refs.Accounts()) > 0 {
		accounts = refs
	}
	var orgs store.OrgChecker
	if len(refs.Organizations()) > 0 {
		orgs = refs
	}

	unknown := make(map[string]bool)
	for _, ve := range store.ValidateEntries(res.Entries, accounts, orgs) {
		if ve.Fatal() {
			continue
		}
		if unknown[ve.Description] {
			continue
		}
		unknown[ve.Description] = true
		log.Warn("reference check", "rule", string(ve.Rule), "detail", ve.Description)
	}
}

// commitIngest records the store, logs and import directory in git. Failures
// are logged; the data is already saved.
func commitIngest(ctx context.Context, a *app, sum ingestSummary) {
	if !gitops.IsRepo(ctx, a.repo) {
		a.log.Warn("history.auto_commit is set but the project is not a git repository")
		return
	}

	var paths []string
	for _, p := range []string{a.cfg.Data.StorePath, a.cfg.Data.LogDir, a.cfg.Data.ImportDir} {
		rel, err := filepath.Rel(a.repo, a.path(p))
		if err != nil {
			continue
		}
		paths = append(paths, rel)
	}

	msg := fmt.Sprintf("ingest: %d files, %d entries", sum.stored, sum.entries)
	author := gitops.Author{Name: a.cfg.History.AuthorName, Email: a.cfg.History.AuthorEmail}
	hash, err := gitops.Commit(ctx, a.repo, paths, msg, author)
	switch {
	case errors.Is(err, gitops.ErrNothingToCommit):
		a.log.Debug("nothing to commit")
	case err != nil:
		a.log.Warn("committing ingested data failed", "error", err)
	default:
		a.log.Info("committed", "commit", hash)
	}
}
