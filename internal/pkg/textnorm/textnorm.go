// Package textnorm folds Portuguese labels (cargo names, statuses, day types)
// so that comparisons ignore case and diacritics.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s, trims it and strips combining marks ("Operário" -> "operario").
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Equal reports whether a and b are the same label once folded.
func Equal(a, b string) bool {
	return Fold(a) == Fold(b)
}

// In reports whether s matches any of candidates once folded.
func In(s string, candidates []string) bool {
	f := Fold(s)
	for _, c := range candidates {
		if Fold(c) == f {
			return true
		}
	}
	return false
}

// Contains reports whether needle occurs in haystack, ignoring case and accents.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
