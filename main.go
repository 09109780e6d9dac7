// =============================================================================
// PINs to PasswordSafe Converter - Main Entry Point
// =============================================================================
//
// USAGE:
//   pins2pwsafe <source_file> <target_file> [flags]
//   pins2pwsafe version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Conversion logic (not for external import)
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/pins2pwsafe/cmd"
)

func main() {
	cmd.Execute()
}
