// =============================================================================
// PINs to PasswordSafe Converter - Reports
// =============================================================================
//
// This module produces the run reports:
//   - the two-line console summary printed after every run
//   - an optional XLSX workbook listing the lines that failed
//
// =============================================================================

package report

import (
	"fmt"
	"io"

	"github.com/ginjaninja78/pins2pwsafe/internal/types"
)

// Summary writes the human-readable run summary.
//
// OUTPUT:
//   12 input line(s) processed, including 1 header, 2 blank, 1 dupe, and 1 failed line(s)
//   7 record(s) written
func Summary(w io.Writer, stats types.Stats) error {
	if stats.Total == 0 {
		_, err := fmt.Fprintln(w, "Input file is empty")
		return err
	}

	if _, err := fmt.Fprintf(w,
		"%d input line(s) processed, including %d header, %d blank, %d dupe, and %d failed line(s)\n",
		stats.Total, stats.Header, stats.Blank, stats.Duplicate, stats.Failed,
	); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%d record(s) written\n", stats.Written)
	return err
}
