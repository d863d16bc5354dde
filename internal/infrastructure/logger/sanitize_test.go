package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeForLog(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain file name", input: "IMG_0042.MOV", want: "IMG_0042.MOV"},
		{name: "path with spaces", input: "/videos/summer trip/clip 01.MOV", want: "/videos/summer trip/clip 01.MOV"},
		{name: "empty", input: "", want: ""},
		{name: "accented and emoji kept", input: "vacances_été_🎬.mov", want: "vacances_été_🎬.mov"},
		{name: "cjk kept", input: "動画.MOV", want: "動画.MOV"},
		{
			name:  "encoder carriage-return progress",
			input: "frame=  12 fps=0.0\rframe=  24 fps=23",
			want:  `frame=  12 fps=0.0\rframe=  24 fps=23`,
		},
		{
			name:  "forged log entry",
			input: "clip.MOV\nERROR: disk full",
			want:  `clip.MOV\nERROR: disk full`,
		},
		{name: "tab", input: "a\tb", want: `a\tb`},
		{name: "null byte", input: "a\x00b", want: `a\x00b`},
		{name: "ansi colour", input: "\x1b[31mred\x1b[0m", want: `\x1b[31mred\x1b[0m`},
		{name: "bell and delete", input: "\x07\x7f", want: `\x07\x7f`},
		{name: "invalid utf-8 byte", input: "ab\xffcd", want: `ab\xffcd`},
		{name: "literal replacement char kept", input: "a�b", want: "a�b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeForLog(tt.input))
		})
	}
}

func TestSanitizeForLog_NoRawControlCharsSurvive(t *testing.T) {
	var sb strings.Builder
	for c := 0; c < 0x20; c++ {
		sb.WriteByte(byte(c))
	}
	sb.WriteByte(0x7f)

	got := SanitizeForLog(sb.String())
	for _, r := range got {
		assert.False(t, r < 0x20 || r == 0x7f, "raw control char %q in %q", r, got)
	}
}

func TestSanitizeForLog_Truncates(t *testing.T) {
	long := strings.Repeat("x", MaxFieldLen+100)

	got := SanitizeForLog(long)

	assert.True(t, strings.HasPrefix(got, strings.Repeat("x", MaxFieldLen)))
	assert.True(t, strings.HasSuffix(got, "...(+100 bytes)"))
}

func TestSanitizeForLog_ExactLimitNotTruncated(t *testing.T) {
	exact := strings.Repeat("é", MaxFieldLen)

	assert.Equal(t, exact, SanitizeForLog(exact))
}
