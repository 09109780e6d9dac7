// =============================================================================
// PINs to PasswordSafe Converter - Record Mapper
// =============================================================================
//
// This module maps one PINs data line onto one PasswordSafe record.
//
// FIELD MAPPING:
//   Category + System  -> Group/Title  (dots in System replaced)
//   User               -> Username
//   Password           -> Password     (empty becomes "---")
//   URL/Comments       -> URL
//   Custom             -> e-mail when it contains "@", else first note
//   Start date         -> Created Time
//   Expires            -> Password Expiry Date
//   More info          -> notes, split on "||"; history markers become
//                         the History field
//
// =============================================================================

package converter

import (
	"strings"

	"github.com/ginjaninja78/pins2pwsafe/internal/dates"
	"github.com/ginjaninja78/pins2pwsafe/internal/pins"
	"github.com/ginjaninja78/pins2pwsafe/internal/types"
)

const (
	// EmptyPassword replaces an empty source password.
	EmptyPassword = "---"

	// EmptyNotes replaces an empty notes field.
	EmptyNotes = `""`

	// NotesSeparator joins retained note fragments.
	NotesSeparator = "»"

	// MoreInfoSeparator splits the "More info" column into fragments.
	MoreInfoSeparator = "||"

	// GroupSeparator separates group levels in a PasswordSafe title.
	GroupSeparator = "."

	// DefaultTitleDotReplacement replaces dots inside the System column.
	DefaultTitleDotReplacement = "_"
)

// MapOptions controls how records are mapped.
type MapOptions struct {
	// History enables password history reconstruction. When false every
	// fragment is kept as a note.
	History bool

	// TitleDotReplacement replaces each "." in System so it does not add a
	// group level. Empty means DefaultTitleDotReplacement.
	TitleDotReplacement string

	// Dates parses the date columns. Nil means dates.NewParser().
	Dates *dates.Parser
}

func (o MapOptions) withDefaults() MapOptions {
	if o.TitleDotReplacement == "" {
		o.TitleDotReplacement = DefaultTitleDotReplacement
	}
	if o.Dates == nil {
		o.Dates = dates.NewParser()
	}
	return o
}

// MapRecord maps the fields of a data line to an OutputRecord.
//
// PARAMETERS:
//   - fields: The data line split on tabs.
//   - ix: The column positions resolved from the header.
//   - opts: Mapping options.
//
// RETURNS:
//   - The mapped record.
//   - An error if the line is too short or its history cannot be encoded.
func MapRecord(fields []string, ix pins.ColumnIndex, opts MapOptions) (types.OutputRecord, error) {
	if err := ix.CheckFields(fields); err != nil {
		return types.OutputRecord{}, err
	}
	opts = opts.withDefaults()

	var (
		email     string
		fragments []string
	)

	if custom := fields[ix.Custom]; custom != "" {
		if strings.Contains(custom, "@") {
			email = custom
		} else {
			fragments = append(fragments, custom)
		}
	}

	if more := fields[ix.MoreInfo]; more != "" {
		fragments = append(fragments, strings.Split(more, MoreInfoSeparator)...)
	}

	var history string
	if opts.History {
		var entries []types.HistoryEntry
		fragments, entries = ExtractHistory(fragments, opts.Dates)

		var err error
		if history, err = FormatHistory(entries); err != nil {
			return types.OutputRecord{}, err
		}
	}

	notes := strings.Join(fragments, NotesSeparator)
	if notes == "" {
		notes = EmptyNotes
	}

	password := fields[ix.Password]
	if password == "" {
		password = EmptyPassword
	}

	return types.OutputRecord{
		Title:    buildTitle(fields[ix.Category], fields[ix.System], opts.TitleDotReplacement),
		Username: fields[ix.User],
		Password: password,
		URL:      fields[ix.URL],
		Email:    email,
		Created:  opts.Dates.Parse(fields[ix.StartDate]),
		Expires:  opts.Dates.Parse(fields[ix.Expires]),
		History:  history,
		Notes:    notes,
	}, nil
}

// buildTitle joins category and system into a grouped title.
func buildTitle(category, system, dotReplacement string) string {
	return category + GroupSeparator + strings.ReplaceAll(system, GroupSeparator, dotReplacement)
}
