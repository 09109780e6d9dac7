package converter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ginjaninja78/pins2pwsafe/internal/pins"
	"github.com/ginjaninja78/pins2pwsafe/internal/tsv"
)

var inputHeader = tsv.Join(pins.RequiredColumns)

func newTestConverter(opts Options) (*Converter, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return New(opts, zap.New(core).Sugar()), logs
}

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

func outputLines(t *testing.T, out string) []string {
	t.Helper()
	require.True(t, strings.HasSuffix(out, "\n"))
	return strings.Split(strings.TrimSuffix(out, "\n"), "\n")
}

func assertPartition(t *testing.T, r Result) {
	t.Helper()
	s := r.Stats
	assert.Equal(t, s.Total, s.Header+s.Blank+s.Duplicate+s.Failed+s.Written)
}

func TestRun_SingleRecordWithNeverExpiry(t *testing.T) {
	conv, _ := newTestConverter(Options{MapOptions: MapOptions{History: true}})
	in := lines(inputHeader, "Web\tsite\tjoe\tpw\thttp://x\t\t2020-01-01\tNever\t")

	var out bytes.Buffer
	result, err := conv.Run(strings.NewReader(in), &out)
	require.NoError(t, err)

	got := outputLines(t, out.String())
	require.Len(t, got, 2)
	assert.Equal(t, "Group/Title\tUsername\tPassword\tURL\te-mail\tCreated Time\tPassword Expiry Date\tHistory\tNotes", got[0])

	fields := tsv.Split(got[1])
	require.Len(t, fields, 9)
	assert.Equal(t, "Web.site", fields[0])
	assert.Equal(t, "2020/01/01 00:00:00", fields[5])
	assert.Equal(t, "", fields[6])
	assert.Equal(t, `""`, fields[8])

	assert.Equal(t, 1, result.Stats.Written)
	assert.Equal(t, 0, result.Stats.Failed)
	assert.Equal(t, 2, result.Stats.Total)
	assert.NotEmpty(t, result.RunID)
	assertPartition(t, result)
}

func TestRun_BlankDuplicateAndFailedLines(t *testing.T) {
	conv, logs := newTestConverter(Options{MapOptions: MapOptions{History: true}})
	good := "A\tb\tu\tp\t\t\t\t\t"
	in := lines(
		inputHeader,
		good,
		"",
		good,
		"short\tline",
		inputHeader,
		"C\td\tu\t\t\tnote\t\t\t",
	)

	var out bytes.Buffer
	result, err := conv.Run(strings.NewReader(in), &out)
	require.NoError(t, err)

	assert.Equal(t, 7, result.Stats.Total)
	assert.Equal(t, 1, result.Stats.Header)
	assert.Equal(t, 1, result.Stats.Blank)
	assert.Equal(t, 2, result.Stats.Duplicate)
	assert.Equal(t, 1, result.Stats.Failed)
	assert.Equal(t, 2, result.Stats.Written)
	assertPartition(t, result)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, 4, result.Failures[0].LineNumber)
	assert.Equal(t, "short\tline", result.Failures[0].Text)

	warnings := logs.FilterMessage("Error while processing line").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, int64(4), warnings[0].ContextMap()["line"])
	assert.Equal(t, "short\tline", warnings[0].ContextMap()["text"])

	assert.Len(t, outputLines(t, out.String()), 3)
}

func TestRun_StrictAbortsOnFirstFailure(t *testing.T) {
	conv, _ := newTestConverter(Options{Strict: true})
	in := lines(inputHeader, "A\tb\tu\tp\t\t\t\t\t", "bad", "C\td\tu\tp\t\t\t\t\t")

	var out bytes.Buffer
	result, err := conv.Run(strings.NewReader(in), &out)
	require.Error(t, err)

	lineErr, ok := IsLineError(err)
	require.True(t, ok)
	assert.Equal(t, 2, lineErr.LineNumber)
	assert.Equal(t, "bad", lineErr.Text)

	// The record before the failure is already written.
	assert.Len(t, outputLines(t, out.String()), 2)
	assert.Equal(t, 1, result.Stats.Written)
	assertPartition(t, result)
}

func TestRun_MissingHeaderColumnIsFatal(t *testing.T) {
	for _, strict := range []bool{false, true} {
		conv, logs := newTestConverter(Options{Strict: strict})
		in := lines("Category\tSystem\tUser", "A\tb\tc")

		var out bytes.Buffer
		_, err := conv.Run(strings.NewReader(in), &out)
		require.Error(t, err)
		assert.ErrorIs(t, err, pins.ErrMissingColumn)

		lineErr, ok := IsLineError(err)
		require.True(t, ok)
		assert.Equal(t, 0, lineErr.LineNumber)
		assert.Equal(t, 1, logs.FilterMessage("Error while processing header").Len())
		assert.Empty(t, out.String())
	}
}

func TestRun_LeadingBlankLinesBeforeHeader(t *testing.T) {
	conv, _ := newTestConverter(Options{})
	in := lines("", inputHeader, "A\tb\tu\tp\t\t\t\t\t")

	var out bytes.Buffer
	result, err := conv.Run(strings.NewReader(in), &out)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.Blank)
	assert.Equal(t, 1, result.Stats.Header)
	assert.Equal(t, 1, result.Stats.Written)
}

func TestRun_EmptyInput(t *testing.T) {
	conv, _ := newTestConverter(Options{})

	var out bytes.Buffer
	result, err := conv.Run(strings.NewReader(""), &out)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Stats.Total)
	assert.Empty(t, out.String())
}

func TestRun_WithoutHistoryColumn(t *testing.T) {
	conv, _ := newTestConverter(Options{MapOptions: MapOptions{History: false}})
	in := lines(inputHeader, "A\tb\tu\tp\t\t\t\t\told: x")

	var out bytes.Buffer
	_, err := conv.Run(strings.NewReader(in), &out)
	require.NoError(t, err)

	got := outputLines(t, out.String())
	assert.Len(t, tsv.Split(got[0]), 8)
	assert.Equal(t, "old: x", tsv.Split(got[1])[7])
}

func TestRun_CRLFInput(t *testing.T) {
	conv, _ := newTestConverter(Options{})
	in := inputHeader + "\r\n" + "A\tb\tu\tp\t\t\t\t\tnote\r\n"

	var out bytes.Buffer
	result, err := conv.Run(strings.NewReader(in), &out)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.Written)
	assert.NotContains(t, out.String(), "\r")
}

func TestRun_UnknownEncoding(t *testing.T) {
	conv, _ := newTestConverter(Options{Encoding: "no-such-charset"})

	_, err := conv.Run(strings.NewReader(inputHeader), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestNew_NilLogger(t *testing.T) {
	conv := New(Options{}, nil)
	in := lines(inputHeader, "bad", "A\tb\tu\tp\t\t\t\t\t")

	result, err := conv.Run(strings.NewReader(in), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.Failed)
	assert.Equal(t, 1, result.Stats.Written)
}
