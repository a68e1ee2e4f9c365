package errreport

import "github.com/dmitrymomot/starterkit/pkg/sanitizer"

// sanitize strips control characters, collapses whitespace and truncates to
// limit runes. It returns "" when nothing printable remains.
func sanitize(msg string, limit int) string {
	return sanitizer.Apply(msg,
		sanitizer.ValidUTF8,
		sanitizer.RemoveControlChars,
		sanitizer.SingleLine,
		sanitizer.Ellipsis(limit),
	)
}
