package util

import "strings"

// Normalize performs basic string normalization (lowercase + trim)
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Truncate shortens a string to at most maxRunes runes (rune-based, not
// byte-based). When the input is too long, the omission string replaces the
// tail so that the result still fits within maxRunes.
func Truncate(s string, maxRunes int, omission string) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}

	omissionRunes := []rune(omission)
	cut := maxRunes - len(omissionRunes)
	if cut < 0 {
		cut = 0
	}

	return string(runes[:cut]) + omission
}
