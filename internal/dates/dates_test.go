package dates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_Layouts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "dotted day first", input: "31.12.2020", want: "2020/12/31 00:00:00"},
		{name: "dotted single digits", input: "1.2.2021", want: "2021/02/01 00:00:00"},
		{name: "iso", input: "2019-07-04", want: "2019/07/04 00:00:00"},
		{name: "slashed day first", input: "25/03/2018", want: "2018/03/25 00:00:00"},
		{name: "slashed month first fallback", input: "12/31/2020", want: "2020/12/31 00:00:00"},
		{name: "ambiguous prefers day first", input: "01/02/2020", want: "2020/02/01 00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			assert.True(t, got.Valid)
			assert.Equal(t, tt.want, Format(got))
		})
	}
}

func TestParse_Absent(t *testing.T) {
	for _, input := range []string{"", "Never", "Никогда", "someday", "2020-13-01", "31.12.2020 10:00", " 31.12.2020"} {
		t.Run(input, func(t *testing.T) {
			got := Parse(input)
			assert.False(t, got.Valid)
			assert.Equal(t, "", got.String())
		})
	}
}

func TestParser_ExtraNeverTokens(t *testing.T) {
	p := NewParser("Jamais")

	assert.False(t, p.Parse("Jamais").Valid)
	assert.False(t, p.Parse("Never").Valid)
	assert.True(t, p.Parse("2020-01-01").Valid)
}

func TestUnknown_IsDistinctFromAbsent(t *testing.T) {
	assert.True(t, Unknown.Valid)
	assert.Equal(t, "1970/01/01 00:00:00", Unknown.String())
	assert.NotEqual(t, Absent(), Unknown)
}

func TestParse_RoundTrip(t *testing.T) {
	// Reformatting in each supported layout must give back the same day.
	d := Parse("2022-08-09")
	for _, layout := range layouts {
		again := Parse(d.Time.Format(layout))
		if layout == "1/2/2006" {
			// 08/09/2022 is claimed by the day-first layout.
			assert.Equal(t, "2022/09/08 00:00:00", again.String())
			continue
		}
		assert.Equal(t, d, again, layout)
	}
}
