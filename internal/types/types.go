// =============================================================================
// PINs to PasswordSafe Converter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - converter
//   - pwsafe
//   - report
//
// =============================================================================

package types

import (
	"github.com/ginjaninja78/pins2pwsafe/internal/dates"
)

// =============================================================================
// RECORD TYPES
// =============================================================================

// OutputRecord is one PasswordSafe import line. It is built once per valid
// input line and written immediately.
type OutputRecord struct {
	// Title is "Category.System"; dots inside System are already replaced.
	Title string

	Username string

	// Password is never empty; an empty source password becomes "---".
	Password string

	URL   string
	Email string

	// Created and Expires render as "" when absent.
	Created dates.ParsedDate
	Expires dates.ParsedDate

	// History is the encoded password history, "" when there is none.
	History string

	// Notes are the retained fragments joined with the notes separator,
	// or `""` when nothing was retained.
	Notes string
}

// Fields returns the record in output column order. The History column is
// included only when withHistory is set.
func (r OutputRecord) Fields(withHistory bool) []string {
	fields := []string{
		r.Title,
		r.Username,
		r.Password,
		r.URL,
		r.Email,
		dates.Format(r.Created),
		dates.Format(r.Expires),
	}
	if withHistory {
		fields = append(fields, r.History)
	}
	return append(fields, r.Notes)
}

// HistoryEntry is a previously used password recovered from a note.
type HistoryEntry struct {
	// Changed is when the password was replaced, or dates.Unknown.
	Changed dates.ParsedDate

	Password string
}

// =============================================================================
// RUN STATISTICS
// =============================================================================

// Stats counts what happened to every input line. Header, Blank, Duplicate,
// Failed and Written always add up to Total.
type Stats struct {
	Total     int
	Header    int
	Blank     int
	Duplicate int
	Failed    int
	Written   int
}

// LineFailure describes one input line that could not be converted.
type LineFailure struct {
	// LineNumber is zero-based; the header is line 0.
	LineNumber int

	// Text is the raw line as read.
	Text string

	Err error
}
