package tsv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func readAll(t *testing.T, r *LineReader) []string {
	t.Helper()
	var lines []string
	for r.Next() {
		lines = append(lines, r.Line())
	}
	return lines
}

func TestLineReader_StripsTerminators(t *testing.T) {
	r, err := NewLineReader(strings.NewReader("a\tb\r\n\nc\nlast"), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"a\tb", "", "c", "last"}, readAll(t, r))
	assert.NoError(t, r.Err())
	assert.Equal(t, 4, r.Count())
	assert.Equal(t, 3, r.LineNumber())
}

func TestLineReader_TrailingNewlineAddsNoLine(t *testing.T) {
	r, err := NewLineReader(strings.NewReader("x\ny\n"), "utf-8")
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y"}, readAll(t, r))
	assert.Equal(t, 2, r.Count())
}

func TestLineReader_Empty(t *testing.T) {
	r, err := NewLineReader(strings.NewReader(""), "UTF-8")
	require.NoError(t, err)

	assert.False(t, r.Next())
	assert.Equal(t, 0, r.Count())
	assert.NoError(t, r.Err())
}

func TestLineReader_Windows1251(t *testing.T) {
	encoded, err := charmap.Windows1251.NewEncoder().String("Никогда\tпароль\n")
	require.NoError(t, err)

	for _, name := range []string{"windows-1251", "cp1251"} {
		t.Run(name, func(t *testing.T) {
			r, err := NewLineReader(bytes.NewReader([]byte(encoded)), name)
			require.NoError(t, err)
			assert.Equal(t, []string{"Никогда\tпароль"}, readAll(t, r))
		})
	}
}

func TestLineReader_InvalidUTF8(t *testing.T) {
	r, err := NewLineReader(bytes.NewReader([]byte("ok\n\xff\xfe\n")), "utf-8")
	require.NoError(t, err)

	for r.Next() {
	}
	assert.Error(t, r.Err())
}

func TestLookupEncoding_Unknown(t *testing.T) {
	_, err := LookupEncoding("klingon-8")
	assert.Error(t, err)
}

func TestSplitJoin(t *testing.T) {
	fields := Split("a\t\tb")
	assert.Equal(t, []string{"a", "", "b"}, fields)
	assert.Equal(t, "a\t\tb", Join(fields))
}

func TestPreferredEncoding(t *testing.T) {
	tests := []struct {
		name   string
		lcAll  string
		lang   string
		expect string
	}{
		{name: "lang charset", lang: "ru_RU.CP1251", expect: "CP1251"},
		{name: "lc_all wins", lcAll: "en_US.ISO-8859-1", lang: "ru_RU.UTF-8", expect: "ISO-8859-1"},
		{name: "modifier stripped", lang: "de_DE.ISO-8859-15@euro", expect: "ISO-8859-15"},
		{name: "no charset", lang: "C", expect: "UTF-8"},
		{name: "unknown charset", lang: "xx_XX.NOPE-42", expect: "UTF-8"},
		{name: "nothing set", expect: "UTF-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LC_ALL", tt.lcAll)
			t.Setenv("LC_CTYPE", "")
			t.Setenv("LANG", tt.lang)
			assert.Equal(t, tt.expect, PreferredEncoding())
		})
	}
}
