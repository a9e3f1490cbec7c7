package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// NormalizarTexto lower-cases a string and strips combining diacritical marks
// so that "Plomería" and "plomeria" compare equal. The result depends only on
// Unicode normalization, never on locale settings.
func NormalizarTexto(s string) string {
	out, _, err := transform.String(diacriticStripper, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// CoincideServicio reports whether the normalized search term occurs in the
// space-joined service descriptions. An empty or whitespace-only term matches
// everything.
func CoincideServicio(servicios []string, termino string) bool {
	t := NormalizarTexto(strings.TrimSpace(termino))
	if t == "" {
		return true
	}
	return strings.Contains(NormalizarTexto(strings.Join(servicios, " ")), t)
}
