// =============================================================================
// PINs to PasswordSafe Converter - Export Header
// =============================================================================
//
// This module resolves the header line of a PINs export into column
// positions. Columns are matched by exact name, so their order in the export
// does not matter. A header without one of the required columns makes every
// following record meaningless and is always fatal.
//
// REQUIRED COLUMNS:
//   Category, System, User, Password, URL/Comments, Custom, Start date,
//   Expires, More info
//
// =============================================================================

package pins

import (
	"errors"
	"fmt"
)

// Column names of a PINs export.
const (
	ColCategory  = "Category"
	ColSystem    = "System"
	ColUser      = "User"
	ColPassword  = "Password"
	ColURL       = "URL/Comments"
	ColCustom    = "Custom"
	ColStartDate = "Start date"
	ColExpires   = "Expires"
	ColMoreInfo  = "More info"
)

// RequiredColumns lists every column the converter reads.
var RequiredColumns = []string{
	ColCategory,
	ColSystem,
	ColUser,
	ColPassword,
	ColURL,
	ColCustom,
	ColStartDate,
	ColExpires,
	ColMoreInfo,
}

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// =============================================================================
// COLUMN INDEX
// =============================================================================

// ColumnIndex holds the zero-based position of each required column.
type ColumnIndex struct {
	Category  int
	System    int
	User      int
	Password  int
	URL       int
	Custom    int
	StartDate int
	Expires   int
	MoreInfo  int
}

// ResolveHeader builds a ColumnIndex from the fields of the header line.
//
// PARAMETERS:
//   - fields: The header line split on tabs.
//
// RETURNS:
//   - The resolved ColumnIndex.
//   - An error wrapping ErrMissingColumn naming the first absent column.
func ResolveHeader(fields []string) (ColumnIndex, error) {
	// The first occurrence of a duplicated name wins.
	positions := make(map[string]int, len(fields))
	for i, name := range fields {
		if _, seen := positions[name]; !seen {
			positions[name] = i
		}
	}

	resolved := make(map[string]int, len(RequiredColumns))
	for _, name := range RequiredColumns {
		pos, ok := positions[name]
		if !ok {
			return ColumnIndex{}, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
		resolved[name] = pos
	}

	return ColumnIndex{
		Category:  resolved[ColCategory],
		System:    resolved[ColSystem],
		User:      resolved[ColUser],
		Password:  resolved[ColPassword],
		URL:       resolved[ColURL],
		Custom:    resolved[ColCustom],
		StartDate: resolved[ColStartDate],
		Expires:   resolved[ColExpires],
		MoreInfo:  resolved[ColMoreInfo],
	}, nil
}

// Required returns the minimum number of fields a data line needs for every
// resolved column to be present.
func (ix ColumnIndex) Required() int {
	highest := 0
	for _, pos := range []int{
		ix.Category, ix.System, ix.User, ix.Password, ix.URL,
		ix.Custom, ix.StartDate, ix.Expires, ix.MoreInfo,
	} {
		if pos > highest {
			highest = pos
		}
	}
	return highest + 1
}

// CheckFields reports an error when a data line is too short for ix.
func (ix ColumnIndex) CheckFields(fields []string) error {
	if want := ix.Required(); len(fields) < want {
		return fmt.Errorf("line has %d field(s), at least %d expected", len(fields), want)
	}
	return nil
}
