package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bmnledger/internal/config"
	"github.com/cleared-dev/bmnledger/internal/gitops"
	"github.com/cleared-dev/bmnledger/internal/importer"
	"github.com/cleared-dev/bmnledger/internal/reference"
)

func newInitCommand(a *app) *cobra.Command {
	var force bool
	var git bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new bmnledger project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.repo
			if len(args) > 0 {
				abs, err := filepath.Abs(args[0])
				if err != nil {
					return fmt.Errorf("resolving path: %w", err)
				}
				dir = abs
			}

			hash, err := runInit(cmd.Context(), dir, force, git)
			if err != nil {
				return err
			}
			if hash != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized bmnledger project at %s (%s)\n", dir, hash)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized bmnledger project at %s\n", dir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	cmd.Flags().BoolVar(&git, "git", false, "initialize a git repository and commit ingested data to it")

	return cmd
}

// runInit writes the project skeleton. With git it also creates a repository
// and returns the hash of the initial commit.
func runInit(ctx context.Context, dir string, force, git bool) (string, error) {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("checking config: %w", err)
	}

	cfg := config.Default()
	cfg.History.AutoCommit = git

	// Create directory structure.
	dirs := []string{
		cfg.Data.ImportDir,
		filepath.Join(cfg.Data.ImportDir, importer.ProcessedDir),
		filepath.Dir(cfg.Data.StorePath),
		cfg.Data.ReferenceDir,
		cfg.Data.LogDir,
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write bmnledger.yaml.
	if err := config.Save(cfgPath, cfg); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}

	// Write empty reference sheets, keeping any the user already has.
	templates := map[string][]string{
		reference.OrganizationsFile: {reference.ColOrgCode, reference.ColOrgName},
		reference.AccountsFile:      {reference.ColAccountCode, reference.ColAccountName, reference.ColAccountCategory},
	}
	for name, cols := range templates {
		path := filepath.Join(dir, cfg.Data.ReferenceDir, name+".csv")
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(strings.Join(cols, ",")+"\n"), 0o644); err != nil {
			return "", fmt.Errorf("writing %s: %w", name, err)
		}
	}

	// Write import/.gitkeep.
	if err := os.WriteFile(filepath.Join(dir, cfg.Data.ImportDir, ".gitkeep"), []byte{}, 0o644); err != nil {
		return "", fmt.Errorf("writing .gitkeep: %w", err)
	}

	if !git {
		return "", nil
	}

	// Initialize git and create initial commit.
	if !gitops.IsRepo(ctx, dir) {
		if err := gitops.Init(ctx, dir); err != nil {
			return "", err
		}
	}
	author := gitops.Author{Name: cfg.History.AuthorName, Email: cfg.History.AuthorEmail}
	hash, err := gitops.Commit(ctx, dir, []string{config.FileName, cfg.Data.ReferenceDir, cfg.Data.ImportDir}, "init: bmnledger project", author)
	if err != nil {
		return "", fmt.Errorf("initial commit: %w", err)
	}
	return hash, nil
}
