// =============================================================================
// Balance Sheet Recon - Configuration Module
// =============================================================================
//
// This module loads and manages the application configuration. A single YAML
// file controls directory layout, the reconciliation rule constants, and the
// optional narrative-generation collaborator.
//
// CONFIGURATION SOURCES:
//   1. config.yaml (or the file passed via --config)
//   2. Built-in defaults for every unset value
//
// The rule constants (clearing tolerance, aging bucket cutoffs, the AP
// write-off cutoff date, top-component count) are configuration rather than
// code: they are policy choices, not invariants.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the global application configuration.
type Config struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// OutputDir is the directory where generated reports are placed.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir is the directory where processed input files are moved
	// after a successful run. Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// RECONCILIATION RULES
	// =========================================================================

	// Rules contains the rule constants applied by the classification and
	// analytics engines.
	Rules RuleSettings `yaml:"rules"`

	// =========================================================================
	// NARRATIVE COLLABORATOR
	// =========================================================================

	// Narrative configures the external narrative-generation collaborator.
	Narrative NarrativeSettings `yaml:"narrative"`
}

// RuleSettings contains the tunable constants of the reconciliation rules.
type RuleSettings struct {
	// ClearingTolerance is the rounding tolerance applied when a balance is
	// compared against zero. Expressed as a decimal string, e.g. "0.01".
	ClearingTolerance string `yaml:"clearing_tolerance"`

	// AgingBucketDays are the upper bounds (in days) of the aging buckets.
	// The final bucket is open-ended. Default: [30, 60, 90], which yields
	// the buckets 0-30, 31-60, 61-90 and 90+.
	AgingBucketDays []int `yaml:"aging_bucket_days"`

	// APWriteOffCutoff is the date before which open Accounts Payable items
	// are flagged for write-off consideration. Format: "2006-01-02".
	// Default: "2024-01-01"
	APWriteOffCutoff string `yaml:"ap_write_off_cutoff"`

	// TopComponents is the number of largest transactions reported per
	// account. Default: 5
	TopComponents int `yaml:"top_components"`

	// HeaderScanRows is how many leading rows of an input file are scanned
	// when locating the header row. Default: 20
	HeaderScanRows int `yaml:"header_scan_rows"`
}

// NarrativeSettings configures the narrative-generation collaborator.
// The core pipeline output is complete and valid even when narrative
// generation is disabled or fails.
type NarrativeSettings struct {
	// Enabled turns narrative generation on. Default: false
	Enabled bool `yaml:"enabled"`

	// Model is the model name passed to the collaborator.
	// Default: "gemini-2.0-flash"
	Model string `yaml:"model"`

	// TimeoutSeconds bounds a single collaborator call. Default: 60
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// Load reads the configuration from a YAML file, applies defaults and
// validates the result. A missing file is not an error: the defaults are a
// complete, working configuration.
func Load(configPath string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		// Run entirely on defaults.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in default configuration.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.InputArchiveDir == "" {
		cfg.InputArchiveDir = "./input_archive"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	// Rule defaults.
	if cfg.Rules.ClearingTolerance == "" {
		cfg.Rules.ClearingTolerance = "0.01"
	}
	if len(cfg.Rules.AgingBucketDays) == 0 {
		cfg.Rules.AgingBucketDays = []int{30, 60, 90}
	}
	if cfg.Rules.APWriteOffCutoff == "" {
		cfg.Rules.APWriteOffCutoff = "2024-01-01"
	}
	if cfg.Rules.TopComponents == 0 {
		cfg.Rules.TopComponents = 5
	}
	if cfg.Rules.HeaderScanRows == 0 {
		cfg.Rules.HeaderScanRows = 20
	}

	// Narrative defaults.
	if cfg.Narrative.Model == "" {
		cfg.Narrative.Model = "gemini-2.0-flash"
	}
	if cfg.Narrative.TimeoutSeconds == 0 {
		cfg.Narrative.TimeoutSeconds = 60
	}
}

// validate checks the configuration for values that cannot be used.
func validate(cfg *Config) error {
	if _, err := decimal.NewFromString(cfg.Rules.ClearingTolerance); err != nil {
		return fmt.Errorf("clearing_tolerance %q is not a decimal: %w", cfg.Rules.ClearingTolerance, err)
	}
	if _, err := time.Parse("2006-01-02", cfg.Rules.APWriteOffCutoff); err != nil {
		return fmt.Errorf("ap_write_off_cutoff %q is not a date: %w", cfg.Rules.APWriteOffCutoff, err)
	}
	for i, days := range cfg.Rules.AgingBucketDays {
		if days <= 0 {
			return fmt.Errorf("aging_bucket_days must be positive, got %d", days)
		}
		if i > 0 && days <= cfg.Rules.AgingBucketDays[i-1] {
			return fmt.Errorf("aging_bucket_days must be strictly increasing")
		}
	}
	if cfg.Rules.TopComponents < 1 {
		return fmt.Errorf("top_components must be at least 1")
	}
	return nil
}

// =============================================================================
// DERIVED ACCESSORS
// =============================================================================

// Tolerance returns the clearing tolerance as a decimal.
// Load guarantees the stored string parses.
func (c *Config) Tolerance() decimal.Decimal {
	d, _ := decimal.NewFromString(c.Rules.ClearingTolerance)
	return d
}

// WriteOffCutoff returns the AP write-off cutoff as a time.
func (c *Config) WriteOffCutoff() time.Time {
	t, _ := time.Parse("2006-01-02", c.Rules.APWriteOffCutoff)
	return t
}
