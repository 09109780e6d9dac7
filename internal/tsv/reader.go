// =============================================================================
// PINs to PasswordSafe Converter - Line Reader Module
// =============================================================================
//
// This module streams lines from a PINs export. The export is tab separated
// text without quoting or escaping, so no CSV machinery is involved: each
// line is decoded from the declared input encoding, its trailing newline is
// stripped, and fields are obtained by splitting on a literal tab.
//
// FEATURES:
//   - Any encoding known to golang.org/x/text by IANA or WHATWG name
//   - Strict UTF-8 validation (invalid bytes abort the read)
//   - LF and CRLF line endings
//   - No line length limit
//
// USAGE:
//   reader, err := tsv.NewLineReader(file, "windows-1251")
//   if err != nil {
//       return err
//   }
//
//   for reader.Next() {
//       fields := tsv.Split(reader.Line())
//       // Process the fields...
//   }
//
//   if err := reader.Err(); err != nil {
//       return err
//   }
//
// =============================================================================

package tsv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Separator is the field separator of both the input and the output format.
const Separator = "\t"

// =============================================================================
// LINE READER
// =============================================================================

// LineReader provides streaming access to the lines of a text file.
type LineReader struct {
	reader     *bufio.Reader
	line       string
	lineNumber int
	err        error
	done       bool
}

// NewLineReader creates a new LineReader decoding r with the named encoding.
//
// PARAMETERS:
//   - r: The raw input stream.
//   - encodingName: An IANA or WHATWG encoding name. Empty means UTF-8.
//
// RETURNS:
//   - A pointer to the LineReader.
//   - An error if the encoding is unknown.
func NewLineReader(r io.Reader, encodingName string) (*LineReader, error) {
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}

	var decoded io.Reader
	if enc == unicode.UTF8 {
		// Validate instead of silently substituting U+FFFD.
		decoded = transform.NewReader(r, encoding.UTF8Validator)
	} else {
		decoded = transform.NewReader(r, enc.NewDecoder())
	}

	return &LineReader{
		reader:     bufio.NewReader(decoded),
		lineNumber: -1,
	}, nil
}

// Next advances to the next line. Returns false when there are no more lines
// or a read error occurred.
func (r *LineReader) Next() bool {
	if r.done || r.err != nil {
		return false
	}

	raw, err := r.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		r.err = fmt.Errorf("error reading line %d: %w", r.lineNumber+1, err)
		return false
	}
	if errors.Is(err, io.EOF) {
		r.done = true
		if raw == "" {
			return false
		}
	}

	r.lineNumber++
	r.line = trimNewline(raw)
	return true
}

// Line returns the current line without its line terminator.
func (r *LineReader) Line() string {
	return r.line
}

// LineNumber returns the zero-based number of the current line.
func (r *LineReader) LineNumber() int {
	return r.lineNumber
}

// Count returns how many lines have been read so far.
func (r *LineReader) Count() int {
	return r.lineNumber + 1
}

// Err returns any error that occurred during reading.
func (r *LineReader) Err() error {
	return r.err
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// Split splits a line into fields on the literal tab character.
func Split(line string) []string {
	return strings.Split(line, Separator)
}

// Join joins fields with the literal tab character.
func Join(fields []string) string {
	return strings.Join(fields, Separator)
}

// LookupEncoding resolves an encoding by IANA name first, then by WHATWG
// label. Empty and "utf-8" variants resolve to UTF-8.
func LookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	switch strings.ToLower(strings.ReplaceAll(name, "_", "-")) {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	}

	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return enc, nil
}

// trimNewline strips a single trailing "\n" or "\r\n".
func trimNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
