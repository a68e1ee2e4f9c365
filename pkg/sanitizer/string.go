package sanitizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const ellipsis = "…"

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// ValidUTF8 drops invalid byte sequences.
func ValidUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "")
}

// RemoveControlChars replaces control characters, line breaks included,
// with spaces so that adjacent words stay apart.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}

// SingleLine collapses every run of whitespace into one space and trims.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// MaxLength cuts s to at most maxLen runes.
func MaxLength(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen])
}

// Ellipsis returns a transform that cuts s to at most maxLen runes, the
// last of which is "…" when s was shortened. Non-positive maxLen disables it.
func Ellipsis(maxLen int) func(string) string {
	return func(s string) string {
		if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
			return s
		}
		return strings.TrimRightFunc(MaxLength(s, maxLen-1), unicode.IsSpace) + ellipsis
	}
}
