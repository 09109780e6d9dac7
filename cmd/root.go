// =============================================================================
// PINs to PasswordSafe Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// performs the conversion itself; 'version' is its only subcommand.
//
// COBRA CLI STRUCTURE:
//   rootCmd (pins2pwsafe <source_file> <target_file>)
//   └── versionCmd (pins2pwsafe version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/pins2pwsafe/internal/config"
)

// =============================================================================
// COMMAND OPTIONS
// =============================================================================

// options holds the values of the root command flags.
type options struct {
	// cfgFile is the path to the YAML configuration file.
	cfgFile string

	// verbose enables debug diagnostics.
	verbose bool

	inEncoding  string
	strict      bool
	noHistory   bool
	backup      bool
	errorReport string
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// newRootCmd builds the root command and its subcommands.
func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "pins2pwsafe <source_file> <target_file>",
		Short: "Convert a PINs export file into a PasswordSafe import file",
		Long: `pins2pwsafe converts the tab separated export of the PINs password manager
into the plain text import format of PasswordSafe.

  - Dates in mixed regional formats are normalized
  - The Custom column becomes the e-mail field or a note
  - "More info" is split into notes; "old: ..." style notes become
    password history entries
  - Blank and repeated lines are skipped, bad lines are reported

The target file is overwritten if it exists.

Example Usage:
  pins2pwsafe export.txt import.txt
  pins2pwsafe export.txt import.txt --in-encoding windows-1251 --strict
  pins2pwsafe export.txt import.txt --backup --error-report failures.xlsx`,

		Args: cobra.ExactArgs(2),

		// Errors are printed once, by Execute.
		SilenceErrors: true,
		SilenceUsage:  true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, opts, args[0], args[1])
		},
	}

	flags := rootCmd.Flags()

	flags.StringVar(&opts.cfgFile, "config", config.DefaultConfigFile,
		"Path to the YAML configuration file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false,
		"Enable verbose output for debugging")
	flags.StringVar(&opts.inEncoding, "in-encoding", "",
		"Encoding of the source file (default: locale encoding)")
	flags.BoolVar(&opts.strict, "strict", false,
		"Fail the conversion if a record cannot be processed")
	flags.BoolVar(&opts.noHistory, "no-history", false,
		"Keep old password notes as notes and omit the History column")
	flags.BoolVar(&opts.backup, "backup", false,
		"Move an existing target file to <target_file>.bak first")
	flags.StringVar(&opts.errorReport, "error-report", "",
		"Write an XLSX report of failed lines to this path")

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
