package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/pins2pwsafe/internal/types"
)

// Sheet names of the failure workbook.
const (
	SummarySheet  = "Summary"
	FailuresSheet = "Failures"
)

// Run describes a finished conversion for the failure workbook.
type Run struct {
	RunID    string
	Source   string
	Target   string
	Finished time.Time
	Stats    types.Stats
	Failures []types.LineFailure
}

// =============================================================================
// FAILURE WORKBOOK
// =============================================================================

// WriteFailureWorkbook writes an XLSX workbook describing run.
//
// PARAMETERS:
//   - path: The workbook file to create or overwrite.
//   - run: The finished run.
//
// WORKBOOK STRUCTURE:
//   Summary  - one row per setting or counter (run id, files, counters)
//   Failures - Line | Error | Text, one row per failed input line
func WriteFailureWorkbook(path string, run Run) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1".
	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	summary := [][]interface{}{
		{"Run ID", run.RunID},
		{"Source", run.Source},
		{"Target", run.Target},
		{"Finished", run.Finished.Format("2006-01-02 15:04:05")},
		{"Lines", run.Stats.Total},
		{"Header", run.Stats.Header},
		{"Blank", run.Stats.Blank},
		{"Duplicate", run.Stats.Duplicate},
		{"Failed", run.Stats.Failed},
		{"Written", run.Stats.Written},
	}
	if err := writeRows(f, SummarySheet, summary); err != nil {
		return err
	}

	if _, err := f.NewSheet(FailuresSheet); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	rows := make([][]interface{}, 0, len(run.Failures)+1)
	rows = append(rows, []interface{}{"Line", "Error", "Text"})
	for _, failure := range run.Failures {
		rows = append(rows, []interface{}{failure.LineNumber, failure.Err.Error(), failure.Text})
	}
	if err := writeRows(f, FailuresSheet, rows); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
