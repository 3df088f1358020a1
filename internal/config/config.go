package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file at the repo root.
const FileName = "bmnledger.yaml"

// EnvPrefix prefixes environment overrides, e.g. BMN_INGEST_WORKERS.
const EnvPrefix = "BMN"

// Config represents the top-level bmnledger.yaml configuration.
type Config struct {
	Data    DataConfig    `yaml:"data" envconfig:"DATA"`
	Ingest  IngestConfig  `yaml:"ingest" envconfig:"INGEST"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	History HistoryConfig `yaml:"history" envconfig:"HISTORY"`
}

// DataConfig locates project files, relative to the repo root.
type DataConfig struct {
	ImportDir    string `yaml:"import_dir" split_words:"true" validate:"required"`
	StorePath    string `yaml:"store_path" split_words:"true" validate:"required"`
	ReferenceDir string `yaml:"reference_dir" split_words:"true"`
	LogDir       string `yaml:"log_dir" split_words:"true" validate:"required"`
}

// IngestConfig controls batch extraction.
type IngestConfig struct {
	// DefaultFiscalYear is used when neither the file nor the command line
	// supplies a year. Zero disables the fallback.
	DefaultFiscalYear int    `yaml:"default_fiscal_year" split_words:"true" validate:"omitempty,min=2000,max=2099"`
	Workers           int    `yaml:"workers" split_words:"true" validate:"min=1,max=64"`
	Sheet             string `yaml:"sheet,omitempty" split_words:"true"`
	MoveProcessed     bool   `yaml:"move_processed" split_words:"true"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level" split_words:"true" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" split_words:"true" validate:"oneof=text json"`
}

// HistoryConfig controls git commits of ingested data.
type HistoryConfig struct {
	// AutoCommit commits the store, logs and import directory after each
	// ingest when the project is a git repository.
	AutoCommit  bool   `yaml:"auto_commit" split_words:"true"`
	AuthorName  string `yaml:"author_name" split_words:"true" validate:"required_if=AutoCommit true"`
	AuthorEmail string `yaml:"author_email" split_words:"true" validate:"omitempty,email"`
}

// Load reads a bmnledger.yaml file from disk, applies BMN_* environment
// overrides and validates the result. Fields absent from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path if it exists and otherwise returns the defaults
// with environment overrides applied.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := envconfig.Process(EnvPrefix, cfg); err != nil {
			return nil, fmt.Errorf("reading environment: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return Load(path)
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			ImportDir:    "import",
			StorePath:    "data/extracted_entries.csv",
			ReferenceDir: "referensi",
			LogDir:       "logs",
		},
		Ingest: IngestConfig{
			Workers:       4,
			MoveProcessed: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		History: HistoryConfig{
			AuthorName:  "bmnledger",
			AuthorEmail: "bmnledger@localhost.localdomain",
		},
	}
}
