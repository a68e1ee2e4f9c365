package sanitizer_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/starterkit/pkg/sanitizer"
)

func TestRemoveControlChars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"keeps printable text", "hello world", "hello world"},
		{"replaces newlines and tabs", "a\nb\tc", "a b c"},
		{"replaces escape and null", "x\x1b[31my\x00z", "x [31my z"},
		{"keeps unicode", "héllo ✓", "héllo ✓"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.RemoveControlChars(tt.input))
		})
	}
}

func TestSingleLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b c", sanitizer.SingleLine("  a \n\n b\t\tc  "))
	assert.Equal(t, "", sanitizer.SingleLine(" \t\n "))
}

func TestValidUTF8(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ok", sanitizer.ValidUTF8("ok"))
	assert.Equal(t, "ab", sanitizer.ValidUTF8("a\xffb"))
}

func TestMaxLength(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "héll", sanitizer.MaxLength("héllo", 4))
	assert.Equal(t, "hi", sanitizer.MaxLength("hi", 10))
	assert.Equal(t, "", sanitizer.MaxLength("hi", 0))
}

func TestEllipsis(t *testing.T) {
	t.Parallel()

	cut := sanitizer.Ellipsis(5)
	assert.Equal(t, "hello", cut("hello"))
	assert.Equal(t, "hell…", cut("hello world"))
	assert.Equal(t, "ab…", sanitizer.Ellipsis(4)("ab  cdef"))

	long := strings.Repeat("ж", 300)
	got := sanitizer.Ellipsis(200)(long)
	assert.Equal(t, 200, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "…"))

	assert.Equal(t, long, sanitizer.Ellipsis(0)(long))
}

func TestCompose(t *testing.T) {
	t.Parallel()

	clean := sanitizer.Compose(
		sanitizer.ValidUTF8,
		sanitizer.RemoveControlChars,
		sanitizer.SingleLine,
		sanitizer.Ellipsis(10),
	)

	assert.Equal(t, "line one…", clean("line\xff one\r\nline two"))
	assert.Equal(t, "short", sanitizer.Apply(" short\n", sanitizer.Trim))
}
