// =============================================================================
// PINs to PasswordSafe Converter - Converter Module
// =============================================================================
//
// This module contains the line driver. It runs the whole conversion of one
// PINs export in a single pass:
//
// CONVERSION PIPELINE:
//   1. Read and decode the next input line
//   2. Skip blank lines and exact repeats of an earlier line
//   3. Resolve the first remaining line as the header (fatal on failure)
//   4. Map every other line to a PasswordSafe record
//   5. Write the record, or log and count the failure
//
// STRICT MODE:
//   Without strict mode a line that cannot be mapped is logged, counted and
//   skipped. With strict mode the first such line aborts the run.
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/ginjaninja78/pins2pwsafe/internal/logging"
	"github.com/ginjaninja78/pins2pwsafe/internal/pins"
	"github.com/ginjaninja78/pins2pwsafe/internal/pwsafe"
	"github.com/ginjaninja78/pins2pwsafe/internal/tsv"
	"github.com/ginjaninja78/pins2pwsafe/internal/types"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of a conversion run.
type Result struct {
	// RunID identifies the run in logs and reports.
	RunID string

	// Stats partitions every input line into header, blank, duplicate,
	// failed and written.
	Stats types.Stats

	// Failures lists the counted failures in input order. Empty in strict
	// mode, where the first failure is returned as an error instead.
	Failures []types.LineFailure
}

// LineError is a failure tied to one input line.
type LineError struct {
	// LineNumber is zero-based; the header is line 0.
	LineNumber int

	// Text is the raw line.
	Text string

	Err error
}

// Error implements the error interface.
func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.LineNumber, e.Err)
}

// Unwrap returns the underlying error.
func (e *LineError) Unwrap() error {
	return e.Err
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Options configures a Converter.
type Options struct {
	MapOptions

	// Encoding names the input encoding. Empty means UTF-8.
	Encoding string

	// Strict aborts the run on the first record failure.
	Strict bool
}

// Logger is the logging interface used by the converter.
// *zap.SugaredLogger satisfies it.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
}

// Converter converts one PINs export into a PasswordSafe import file.
type Converter struct {
	opts   Options
	logger Logger
	runID  string
}

// New creates a new Converter instance.
//
// PARAMETERS:
//   - opts: Conversion options.
//   - logger: Receives per-line diagnostics. Nil discards them.
func New(opts Options, logger Logger) *Converter {
	opts.MapOptions = opts.MapOptions.withDefaults()
	if logger == nil {
		logger = logging.Nop()
	}
	return &Converter{
		opts:   opts,
		logger: logger,
		runID:  uuid.New().String(),
	}
}

// RunID returns the identifier of this converter's run.
func (c *Converter) RunID() string {
	return c.runID
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run converts in to out.
//
// RETURNS:
//   - The Result; its Stats are accurate even when an error is returned.
//   - An error for a bad header, an I/O failure, or a record failure in
//     strict mode. Line-related errors are *LineError.
func (c *Converter) Run(in io.Reader, out io.Writer) (result Result, err error) {
	result.RunID = c.runID

	reader, err := tsv.NewLineReader(in, c.opts.Encoding)
	if err != nil {
		return result, err
	}

	writer := pwsafe.NewWriter(out, c.opts.History)
	defer func() {
		// Lines already written stay valid whatever happens next.
		if flushErr := writer.Flush(); flushErr != nil && err == nil {
			err = flushErr
		}
	}()

	var (
		seen      = make(map[string]struct{})
		index     pins.ColumnIndex
		haveIndex bool
	)

	for reader.Next() {
		line := reader.Line()
		lineNo := reader.LineNumber()
		result.Stats.Total++

		// =====================================================================
		// STEP 1: SKIP BLANK AND DUPLICATE LINES
		// =====================================================================

		if line == "" {
			result.Stats.Blank++
			continue
		}
		if _, dup := seen[line]; dup {
			result.Stats.Duplicate++
			c.logger.Debugw("Skipping duplicate line", "line", lineNo)
			continue
		}
		seen[line] = struct{}{}

		fields := tsv.Split(line)

		// =====================================================================
		// STEP 2: RESOLVE HEADER
		// =====================================================================

		if !haveIndex {
			index, err = pins.ResolveHeader(fields)
			if err != nil {
				lineErr := &LineError{LineNumber: lineNo, Text: line, Err: err}
				result.Stats.Failed++
				c.logger.Errorw("Error while processing header", "line", lineNo, "error", err, "text", line)
				return result, lineErr
			}
			if err := writer.WriteHeader(); err != nil {
				return result, err
			}
			haveIndex = true
			result.Stats.Header++
			c.logger.Debugw("Resolved header", "line", lineNo, "fields", len(fields), "required", index.Required())
			continue
		}

		// =====================================================================
		// STEP 3: MAP AND WRITE RECORD
		// =====================================================================

		record, mapErr := MapRecord(fields, index, c.opts.MapOptions)
		if mapErr != nil {
			c.logger.Warnw("Error while processing line", "line", lineNo, "error", mapErr, "text", line)
			result.Stats.Failed++
			if c.opts.Strict {
				return result, &LineError{LineNumber: lineNo, Text: line, Err: mapErr}
			}
			result.Failures = append(result.Failures, types.LineFailure{LineNumber: lineNo, Text: line, Err: mapErr})
			continue
		}

		if err := writer.Write(record); err != nil {
			return result, err
		}
		result.Stats.Written++
	}

	if err := reader.Err(); err != nil {
		return result, err
	}

	c.logger.Infow("Conversion finished",
		"run_id", c.runID,
		"lines", result.Stats.Total,
		"written", result.Stats.Written,
		"failed", result.Stats.Failed,
	)

	return result, nil
}

// IsLineError reports whether err carries an input line, and returns it.
func IsLineError(err error) (*LineError, bool) {
	var lineErr *LineError
	if errors.As(err, &lineErr) {
		return lineErr, true
	}
	return nil, false
}
