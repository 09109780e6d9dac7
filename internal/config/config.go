// =============================================================================
// PINs to PasswordSafe Converter - Configuration Module
// =============================================================================
//
// This module loads the converter settings. Settings are layered, later
// layers overriding earlier ones:
//
//   1. Built-in defaults
//   2. YAML configuration file (pins2pwsafe.yaml by default, optional)
//   3. Environment variables (PINS2PWSAFE_*, a .env file is honoured)
//   4. Command line flags (applied by the cmd package)
//
// EXAMPLE FILE:
//   in_encoding: windows-1251
//   strict: false
//   history: true
//   title_dot_replacement: "_"
//   never_tokens: ["Jamais", "Nie"]
//   log_level: info
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/pins2pwsafe/internal/tsv"
)

// DefaultConfigFile is read when no --config flag is given. It may be absent.
const DefaultConfigFile = "pins2pwsafe.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the converter settings.
type Config struct {
	// =========================================================================
	// INPUT SETTINGS
	// =========================================================================

	// InEncoding is the character encoding of the PINs export.
	// Default: the charset of the current locale, else UTF-8.
	InEncoding string `yaml:"in_encoding" env:"PINS2PWSAFE_IN_ENCODING"`

	// NeverTokens are extra date values meaning "never expires", in
	// addition to "", "Never" and "Никогда".
	NeverTokens []string `yaml:"never_tokens" env:"PINS2PWSAFE_NEVER_TOKENS" envSeparator:","`

	// =========================================================================
	// CONVERSION SETTINGS
	// =========================================================================

	// Strict aborts the conversion on the first record that fails.
	// Default: false
	Strict bool `yaml:"strict" env:"PINS2PWSAFE_STRICT"`

	// History reconstructs password history from notes and emits the
	// History column.
	// Default: true
	History bool `yaml:"history" env:"PINS2PWSAFE_HISTORY"`

	// TitleDotReplacement replaces dots inside the System column.
	// Default: "_"
	TitleDotReplacement string `yaml:"title_dot_replacement" env:"PINS2PWSAFE_TITLE_DOT_REPLACEMENT"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// Backup moves an existing target file to <target>.bak before writing.
	// Default: false
	Backup bool `yaml:"backup" env:"PINS2PWSAFE_BACKUP"`

	// ErrorReport is the path of an XLSX report of failed lines.
	// Empty disables the report.
	ErrorReport string `yaml:"error_report" env:"PINS2PWSAFE_ERROR_REPORT"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of diagnostics on stderr.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "warn"
	LogLevel string `yaml:"log_level" env:"PINS2PWSAFE_LOG_LEVEL"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		InEncoding:          tsv.PreferredEncoding(),
		History:             true,
		TitleDotReplacement: "_",
		LogLevel:            "warn",
	}
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load builds the configuration from defaults, the YAML file and the
// environment.
//
// PARAMETERS:
//   - configPath: The YAML file to read. Empty skips the file.
//   - required: When false a missing file is not an error.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read or parsed, or validation fails.
func Load(configPath string, required bool) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		if err := loadFile(cfg, configPath, required); err != nil {
			return nil, err
		}
	}

	// A missing .env file is fine.
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadFile overlays the YAML file at path onto cfg. Keys absent from the
// file keep their current value.
func loadFile(cfg *Config, path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// applyDefaults restores defaults for settings explicitly set to empty.
func applyDefaults(cfg *Config) {
	if cfg.InEncoding == "" {
		cfg.InEncoding = tsv.PreferredEncoding()
	}
	if cfg.TitleDotReplacement == "" {
		cfg.TitleDotReplacement = "_"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
}

// Validate checks the settings for values the converter cannot use.
func (c *Config) Validate() error {
	if _, err := tsv.LookupEncoding(c.InEncoding); err != nil {
		return fmt.Errorf("in_encoding: %w", err)
	}

	if strings.Contains(c.TitleDotReplacement, ".") || strings.ContainsAny(c.TitleDotReplacement, "\t\r\n") {
		return fmt.Errorf("title_dot_replacement %q must not contain dots, tabs or newlines", c.TitleDotReplacement)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel)
	}

	return nil
}
