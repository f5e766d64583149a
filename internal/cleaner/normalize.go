// Package cleaner turns raw bank-statement memos into canonical
// counterparty names.
//
// Everything in this package is pure: no IO, no package state that is
// written after init. All functions are safe for concurrent use.
package cleaner

import (
	"strings"
	"unicode"
)

// isSpace is unicode.IsSpace plus U+FEFF, which statement exports leave
// inside cells as well as at the start of the file.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}

// NormalizeSpaces collapses runs of whitespace to a single space and trims
// both ends.
func NormalizeSpaces(s string) string {
	return strings.Join(strings.FieldsFunc(s, isSpace), " ")
}

// LookupKey is the case-insensitive comparison form of s. Never displayed.
func LookupKey(s string) string {
	return strings.ToLower(NormalizeSpaces(s))
}

func wordCount(s string) int {
	return len(strings.FieldsFunc(s, isSpace))
}
