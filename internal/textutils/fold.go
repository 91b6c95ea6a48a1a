// Package textutils provides text normalization shared by the identifier
// parser and the record normalizer.
package textutils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripAccents removes combining marks, so "Descripción" becomes "Descripcion".
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// CollapseSpaces trims s and replaces every whitespace run with one space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Fold returns the comparison form of s: accents stripped, upper-cased,
// whitespace collapsed.
func Fold(s string) string {
	return CollapseSpaces(strings.ToUpper(StripAccents(s)))
}

// EqualFold compares two strings by their folded form.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}
