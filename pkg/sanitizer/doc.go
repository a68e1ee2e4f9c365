// Package sanitizer cleans short human readable text before it is shown to
// users or written to logs.
//
// Transforms are plain func(string) string values and combine with Apply or
// Compose:
//
//	clean := sanitizer.Compose(
//		sanitizer.ValidUTF8,
//		sanitizer.RemoveControlChars,
//		sanitizer.SingleLine,
//		sanitizer.Ellipsis(200),
//	)
//	msg := clean(err.Error())
package sanitizer
