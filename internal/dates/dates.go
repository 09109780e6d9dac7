// =============================================================================
// PINs to PasswordSafe Converter - Date Parser
// =============================================================================
//
// This module parses the free-form date columns of a PINs export. Exports
// mix regional conventions inside the same column, so a value is tried
// against an ordered list of layouts and the first full match wins.
//
// SUPPORTED LAYOUTS (in trial order):
//   1. day.month.year    e.g. 31.12.2020
//   2. year-month-day    e.g. 2020-12-31
//   3. day/month/year    e.g. 31/12/2020
//   4. month/day/year    e.g. 12/31/2020
//
// The order matters: "01/02/2020" is read as 1 February, never 2 January.
//
// ABSENCE:
//   A value that is empty, a "never" token, or matches no layout yields an
//   absent ParsedDate. Absence is data, not an error.
//
// =============================================================================

package dates

import (
	"time"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// OutputLayout is the PasswordSafe timestamp layout (YYYY/MM/DD HH:MM:SS).
const OutputLayout = "2006/01/02 15:04:05"

// layouts are tried in order by Parse. Single-digit day and month are
// accepted, like the export tool writes them.
var layouts = []string{
	"2.1.2006",
	"2006-1-2",
	"2/1/2006",
	"1/2/2006",
}

// neverTokens mark a date column that intentionally has no value.
var neverTokens = []string{"", "Never", "Никогда"}

// Unknown is the timestamp given to history entries whose date could not be
// recovered. It renders as a real, sortable date and is distinct from an
// absent ParsedDate.
var Unknown = ParsedDate{Time: time.Unix(0, 0).UTC(), Valid: true}

// =============================================================================
// PARSED DATE
// =============================================================================

// ParsedDate is either a concrete calendar timestamp or absent.
type ParsedDate struct {
	// Time is the parsed timestamp. Meaningless when Valid is false.
	Time time.Time

	// Valid is false for an absent date.
	Valid bool
}

// Absent returns the "no date" value.
func Absent() ParsedDate {
	return ParsedDate{}
}

// String renders the date in OutputLayout, or "" when absent.
func (d ParsedDate) String() string {
	return Format(d)
}

// =============================================================================
// PARSER
// =============================================================================

// Parser parses date columns. The zero value is not usable; use NewParser.
type Parser struct {
	never map[string]struct{}
}

// NewParser creates a Parser that treats the built-in never tokens and any
// extra tokens as absent dates.
//
// PARAMETERS:
//   - extraNever: Additional locale-specific "never expires" tokens.
func NewParser(extraNever ...string) *Parser {
	never := make(map[string]struct{}, len(neverTokens)+len(extraNever))
	for _, tok := range neverTokens {
		never[tok] = struct{}{}
	}
	for _, tok := range extraNever {
		never[tok] = struct{}{}
	}
	return &Parser{never: never}
}

// Parse converts raw field text into a ParsedDate.
//
// PARAMETERS:
//   - s: The raw field text.
//
// RETURNS:
//   - The first layout that matches the whole string, at midnight UTC.
//   - An absent ParsedDate for never tokens or when no layout matches.
func (p *Parser) Parse(s string) ParsedDate {
	if _, ok := p.never[s]; ok {
		return Absent()
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return ParsedDate{Time: t, Valid: true}
		}
	}

	return Absent()
}

var defaultParser = NewParser()

// Parse parses s with the built-in never tokens only.
func Parse(s string) ParsedDate {
	return defaultParser.Parse(s)
}

// Format renders d in OutputLayout, or "" when d is absent.
func Format(d ParsedDate) string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(OutputLayout)
}
