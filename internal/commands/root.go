package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bmnledger/internal/buildinfo"
	"github.com/cleared-dev/bmnledger/internal/config"
	"github.com/cleared-dev/bmnledger/internal/logging"
)

// app holds state shared by subcommands, filled in before any of them run.
type app struct {
	repo     string
	cfgPath  string
	logLevel string

	cfg *config.Config
	log *slog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "bmnledger",
		Short:   "Extract ledger entries from BMN asset reports",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.repo, "repo", ".", "project directory")
	rootCmd.PersistentFlags().StringVar(&a.cfgPath, "config", "", "config file (default <repo>/"+config.FileName+")")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override the configured log level")

	rootCmd.AddCommand(newInitCommand(a))
	rootCmd.AddCommand(newExtractCommand(a))
	rootCmd.AddCommand(newIngestCommand(a))
	rootCmd.AddCommand(newInspectCommand(a))
	rootCmd.AddCommand(newReportCommand(a))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// setup loads the config and builds the logger. Log output goes to stderr so
// stdout stays clean for extracted data.
func (a *app) setup(cmd *cobra.Command) error {
	repo, err := filepath.Abs(a.repo)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	a.repo = repo

	path := a.cfgPath
	if path == "" {
		path = filepath.Join(a.repo, config.FileName)
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	a.cfg = cfg
	a.log = logging.New(cfg.Logging, cmd.ErrOrStderr())
	return nil
}

// path resolves a configured path against the project directory.
func (a *app) path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.repo, p)
}

// fiscalYear returns the command-line year, else the configured default.
func (a *app) fiscalYear(flag int) int {
	if flag != 0 {
		return flag
	}
	return a.cfg.Ingest.DefaultFiscalYear
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Skip config loading.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bmnledger %s\n", buildinfo.String())
		},
	}
}
