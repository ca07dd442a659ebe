// Package text cleans raw captions before they are split into grapheme units.
package text

import (
	"errors"
	"strings"
	"unicode"

	"github.com/example/memetrend/internal/hangul"
	"golang.org/x/text/unicode/norm"
)

// ErrEmptyText is returned when the input text is empty or whitespace-only.
var ErrEmptyText = errors.New("text is empty")

// Normalize prepares text typed by a user on the command line.
// It normalizes line endings to \n, trims surrounding whitespace
// and rejects empty or whitespace-only input.
func Normalize(s string) (string, error) {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	s = strings.TrimSpace(s)

	if s == "" {
		return "", ErrEmptyText
	}

	return s, nil
}

// Compose rewrites s in Unicode normalization form C. Captions copied from
// some platforms carry Hangul as conjoining Jamo sequences (U+1100 block);
// NFC folds those back into syllable blocks so Clean does not drop them.
// Compatibility Jamo are left untouched.
func Compose(s string) string {
	return norm.NFC.String(s)
}

// Clean drops every rune that is not an ASCII letter, an ASCII digit, a Hangul
// syllable block, a compatibility Jamo or whitespace.
func Clean(s string) string {
	return strings.Map(func(r rune) rune {
		if Keep(r) {
			return r
		}
		return -1
	}, s)
}

// Keep reports whether Clean retains r.
func Keep(r rune) bool {
	switch {
	case IsASCIILetter(r), r >= '0' && r <= '9':
		return true
	case hangul.IsSyllable(r), hangul.IsCompatConsonant(r), hangul.IsCompatVowel(r):
		return true
	default:
		return unicode.IsSpace(r)
	}
}

// IsASCIILetter reports whether r is in [A-Za-z].
func IsASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Words splits s into non-empty words on whitespace boundaries.
func Words(s string) []string {
	return strings.FieldsFunc(s, unicode.IsSpace)
}
