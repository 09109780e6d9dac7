// =============================================================================
// PINs to PasswordSafe Converter - Conversion Pipeline
// =============================================================================
//
// This file orchestrates one conversion run for the root command.
//
// PROCESSING PIPELINE:
//   1. Load configuration (defaults, YAML file, environment, flags)
//   2. Open the source file
//   3. Back up the target file if requested, then create it
//   4. Convert line by line
//   5. Write the failure workbook if requested
//   6. Print the summary
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/pins2pwsafe/internal/config"
	"github.com/ginjaninja78/pins2pwsafe/internal/converter"
	"github.com/ginjaninja78/pins2pwsafe/internal/dates"
	"github.com/ginjaninja78/pins2pwsafe/internal/logging"
	"github.com/ginjaninja78/pins2pwsafe/internal/report"
	"github.com/ginjaninja78/pins2pwsafe/internal/types"
	"github.com/ginjaninja78/pins2pwsafe/pkg/utils"
)

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess converts source into target.
func runProcess(cmd *cobra.Command, opts *options, source, target string) (err error) {
	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel, opts.verbose)
	defer func() { _ = logger.Sync() }()

	logger.Debugw("Configuration loaded",
		"in_encoding", cfg.InEncoding,
		"strict", cfg.Strict,
		"history", cfg.History,
		"backup", cfg.Backup,
	)

	// =========================================================================
	// STEP 2: OPEN SOURCE
	// =========================================================================

	in, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer in.Close()

	// =========================================================================
	// STEP 3: PREPARE TARGET
	// =========================================================================

	if cfg.Backup {
		backupPath, err := utils.BackupFile(target)
		if err != nil {
			return fmt.Errorf("failed to back up target file: %w", err)
		}
		if backupPath != "" {
			logger.Infow("Backed up target file", "path", backupPath)
		}
	}

	out, err := utils.CreateFile(target)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close target file: %w", closeErr)
		}
	}()

	// =========================================================================
	// STEP 4: CONVERT
	// =========================================================================

	conv := converter.New(converter.Options{
		MapOptions: converter.MapOptions{
			History:             cfg.History,
			TitleDotReplacement: cfg.TitleDotReplacement,
			Dates:               dates.NewParser(cfg.NeverTokens...),
		},
		Encoding: cfg.InEncoding,
		Strict:   cfg.Strict,
	}, logger)

	result, runErr := conv.Run(in, out)

	// =========================================================================
	// STEP 5: FAILURE WORKBOOK
	// =========================================================================

	if cfg.ErrorReport != "" {
		run := report.Run{
			RunID:    result.RunID,
			Source:   source,
			Target:   target,
			Finished: time.Now(),
			Stats:    result.Stats,
			Failures: result.Failures,
		}
		// The failure that aborted the run belongs in the report too.
		if lineErr, ok := converter.IsLineError(runErr); ok {
			run.Failures = append(run.Failures, types.LineFailure{
				LineNumber: lineErr.LineNumber,
				Text:       lineErr.Text,
				Err:        lineErr.Err,
			})
		}
		if err := report.WriteFailureWorkbook(cfg.ErrorReport, run); err != nil {
			logger.Errorw("Failed to write error report", "path", cfg.ErrorReport, "error", err)
		} else {
			logger.Infow("Wrote error report", "path", cfg.ErrorReport, "failures", len(run.Failures))
		}
	}

	if runErr != nil {
		return fmt.Errorf("conversion failed: %w", runErr)
	}

	// =========================================================================
	// STEP 6: PRINT SUMMARY
	// =========================================================================

	return report.Summary(cmd.OutOrStdout(), result.Stats)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// loadConfig loads the configuration and applies the flags the user set.
// The default config file may be absent; an explicit one must exist.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	flags := cmd.Flags()

	cfg, err := config.Load(opts.cfgFile, flags.Changed("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if flags.Changed("in-encoding") {
		cfg.InEncoding = opts.inEncoding
	}
	// --strict is a presence flag: any occurrence enables strict mode.
	if flags.Changed("strict") {
		cfg.Strict = true
	}
	if flags.Changed("no-history") && opts.noHistory {
		cfg.History = false
	}
	if flags.Changed("backup") {
		cfg.Backup = opts.backup
	}
	if flags.Changed("error-report") {
		cfg.ErrorReport = opts.errorReport
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
