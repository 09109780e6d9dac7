package converter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ginjaninja78/pins2pwsafe/internal/dates"
	"github.com/ginjaninja78/pins2pwsafe/internal/types"
)

// =============================================================================
// HISTORY MARKERS
// =============================================================================

// historyMarkers are the note prefixes that introduce old passwords, tested
// case-insensitively in this order. No marker is a prefix of another.
var historyMarkers = []string{
	"old: ",
	"olds: ",
	"was: ",
	"old pwd: ",
	"old pwds: ",
	"old pass: ",
	"password was: ",
}

// maxHistoryValue is the largest count or length two hex digits can hold.
const maxHistoryValue = 0xff

// =============================================================================
// EXTRACTION
// =============================================================================

// ExtractHistory splits note fragments into those kept as notes and the
// password history entries recovered from the rest.
//
// PARAMETERS:
//   - fragments: Note fragments in source order.
//   - parser: Parses the optional date after a single old password.
//
// RETURNS:
//   - The fragments without a history marker, unchanged and in order.
//   - The history entries in source order.
//
// RECOGNIZED FORMS (after the marker):
//   "pw"           one password, unknown date
//   "pw 01.01.2020" one password changed on that date
//   "pw1 pw2 pw3"  several passwords, unknown dates
func ExtractHistory(fragments []string, parser *dates.Parser) ([]string, []types.HistoryEntry) {
	var (
		retained []string
		entries  []types.HistoryEntry
	)

	for _, fragment := range fragments {
		rest, ok := stripMarker(fragment)
		if !ok {
			retained = append(retained, fragment)
			continue
		}
		entries = append(entries, parseHistory(rest, parser)...)
	}

	return retained, entries
}

// stripMarker removes the first matching history marker from fragment.
func stripMarker(fragment string) (string, bool) {
	for _, marker := range historyMarkers {
		if len(fragment) >= len(marker) && strings.EqualFold(fragment[:len(marker)], marker) {
			return fragment[len(marker):], true
		}
	}
	return "", false
}

func parseHistory(rest string, parser *dates.Parser) []types.HistoryEntry {
	password, when, found := strings.Cut(rest, " ")
	if !found {
		return []types.HistoryEntry{{Changed: dates.Unknown, Password: rest}}
	}

	if changed := parser.Parse(when); changed.Valid {
		return []types.HistoryEntry{{Changed: changed, Password: password}}
	}

	fields := strings.Fields(rest)
	entries := make([]types.HistoryEntry, 0, len(fields))
	for _, pw := range fields {
		entries = append(entries, types.HistoryEntry{Changed: dates.Unknown, Password: pw})
	}
	return entries
}

// =============================================================================
// ENCODING
// =============================================================================

// FormatHistory encodes entries as a PasswordSafe history field:
//
//	1NNCC YYYY/MM/DD HH:MM:SS LL password ...
//
// where NN (kept) and CC (present) are the entry count and LL is the
// password length, all as two lowercase hex digits. No entries encode as "".
func FormatHistory(entries []types.HistoryEntry) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}
	if len(entries) > maxHistoryValue {
		return "", fmt.Errorf("too many history entries: %d (max %d)", len(entries), maxHistoryValue)
	}

	parts := make([]string, 0, len(entries)+1)
	parts = append(parts, fmt.Sprintf("1%02x%02x", len(entries), len(entries)))

	for _, entry := range entries {
		length := utf8.RuneCountInString(entry.Password)
		if length > maxHistoryValue {
			return "", fmt.Errorf("history password too long: %d characters (max %d)", length, maxHistoryValue)
		}
		parts = append(parts, fmt.Sprintf("%s %02x %s", dates.Format(entry.Changed), length, entry.Password))
	}

	return strings.Join(parts, " "), nil
}
