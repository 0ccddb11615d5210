package report

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

const hexDigits = "0123456789ABCDEF"

// sanitize makes one line of file content safe to print to a terminal.
//   - If tabWidth > 0, it replaces \t with tabWidth spaces. Otherwise, \t is left as-is.
//   - All other ASCII control characters (<= 0x1F, 0x7F), including \r, are replaced with "\\xXX" (ex: "\\x1B" for ESC), so file content cannot inject
//     escape sequences into colored output.
//   - Invalid UTF-8 is replaced by U+FFFD.
func sanitize(s string, tabWidth int) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteRune('\uFFFD')
			i++
			continue
		}
		i += size

		switch {
		case r == '\t' && tabWidth > 0:
			for j := 0; j < tabWidth; j++ {
				b.WriteByte(' ')
			}
		case r == '\t':
			b.WriteRune('\t')
		case r <= 0x7F && (r < 0x20 || r == 0x7F):
			code := byte(r)
			b.WriteByte('\\')
			b.WriteByte('x')
			b.WriteByte(hexDigits[code>>4])
			b.WriteByte(hexDigits[code&0x0F])
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

// fit truncates s to at most width terminal cells, marking the cut with "…". width <= 0 means no limit.
func fit(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
