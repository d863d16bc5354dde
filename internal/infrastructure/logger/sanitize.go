package logger

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxFieldLen caps a single sanitized value. Encoder stderr can carry very
// long lines (stream metadata dumps) that would otherwise flood the log.
const MaxFieldLen = 512

// SanitizeForLog makes untrusted text (file names, encoder output) safe to
// interpolate into a log line. Control characters are escaped so they cannot
// forge entries or drive the terminal, printable Unicode is kept as is and
// the result is truncated to MaxFieldLen runes.
func SanitizeForLog(s string) string {
	var b strings.Builder
	b.Grow(min(len(s), MaxFieldLen+8))

	n := 0
	for i, r := range s {
		if n == MaxFieldLen {
			fmt.Fprintf(&b, "...(+%d bytes)", len(s)-i)
			break
		}
		n++
		switch {
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == utf8.RuneError && !strings.HasPrefix(s[i:], "�"):
			fmt.Fprintf(&b, `\x%02x`, s[i])
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
