// =============================================================================
// PINs to PasswordSafe Converter - PasswordSafe Writer Module
// =============================================================================
//
// This module writes the PasswordSafe plain text import format: UTF-8, tab
// separated, one header line followed by one line per record.
//
// OUTPUT STRUCTURE:
//   Group/Title  Username  Password  URL  e-mail  Created Time
//   Password Expiry Date  [History]  Notes
//
//   The History column is present only when history reconstruction is on.
//
// =============================================================================

package pwsafe

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ginjaninja78/pins2pwsafe/internal/tsv"
	"github.com/ginjaninja78/pins2pwsafe/internal/types"
)

// Output column names.
const (
	ColTitle    = "Group/Title"
	ColUsername = "Username"
	ColPassword = "Password"
	ColURL      = "URL"
	ColEmail    = "e-mail"
	ColCreated  = "Created Time"
	ColExpiry   = "Password Expiry Date"
	ColHistory  = "History"
	ColNotes    = "Notes"
)

// Header returns the output header fields.
func Header(withHistory bool) []string {
	header := []string{ColTitle, ColUsername, ColPassword, ColURL, ColEmail, ColCreated, ColExpiry}
	if withHistory {
		header = append(header, ColHistory)
	}
	return append(header, ColNotes)
}

// =============================================================================
// WRITER
// =============================================================================

// Writer serializes OutputRecords. Call Flush when done.
type Writer struct {
	w           *bufio.Writer
	withHistory bool
	written     int
}

// NewWriter creates a Writer on w.
//
// PARAMETERS:
//   - w: The destination, written as UTF-8.
//   - withHistory: Whether the History column is emitted.
func NewWriter(w io.Writer, withHistory bool) *Writer {
	return &Writer{
		w:           bufio.NewWriter(w),
		withHistory: withHistory,
	}
}

// WriteHeader writes the column header line.
func (w *Writer) WriteHeader() error {
	return w.writeLine(Header(w.withHistory))
}

// Write writes one record line.
func (w *Writer) Write(record types.OutputRecord) error {
	if err := w.writeLine(record.Fields(w.withHistory)); err != nil {
		return err
	}
	w.written++
	return nil
}

// Written returns the number of records written, excluding the header.
func (w *Writer) Written() int {
	return w.written
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

func (w *Writer) writeLine(fields []string) error {
	if _, err := w.w.WriteString(tsv.Join(fields) + "\n"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
