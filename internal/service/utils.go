package service

import (
	"strings"
	"unicode/utf8"
)

// cleanText drops invalid UTF-8 (Postgres rejects it), trims surrounding
// space and cuts the result to at most max runes.
func cleanText(s string, max int) string {
	if !utf8.ValidString(s) {
		var b strings.Builder
		b.Grow(len(s))
		for len(s) > 0 {
			r, size := utf8.DecodeRuneInString(s)
			if !(r == utf8.RuneError && size == 1) {
				b.WriteRune(r)
			}
			s = s[size:]
		}
		s = b.String()
	}

	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > max {
		s = string([]rune(s)[:max])
	}
	return s
}
