package utils

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeWord canonicalizes a word the same way the vocabulary stores it:
// trimmed, NFC-composed and lower-cased. Embedding dumps routinely mix
// composed and decomposed accents, so the loader and the shells must run
// every word through this before a lookup.
func NormalizeWord(s string) string {
	s = strings.TrimSpace(s)
	if !norm.NFC.IsNormalString(s) {
		s = norm.NFC.String(s)
	}
	return strings.ToLower(s)
}

// NormalizeLine trims and lower-cases a raw input line without touching
// interior whitespace, keeping command arguments splittable.
func NormalizeLine(s string) string {
	if !norm.NFC.IsNormalString(s) {
		s = norm.NFC.String(s)
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// IsWordLike reports whether the input looks like a single word worth
// looking up: non-empty, no interior whitespace, no control runes.
func IsWordLike(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r == ' ' || r == '\t' || r < 0x20 {
			return false
		}
	}
	return true
}
