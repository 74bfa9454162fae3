package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// FoldString lowers `s` and strips diacritics so that "João" == "joao".
func FoldString(s string) string {
	folded, _, err := transform.String(foldTransformer, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

// ContainsFold reports whether substr occurs in s, ignoring case and diacritics.
func ContainsFold(s, substr string) bool {
	return strings.Contains(FoldString(s), FoldString(substr))
}

// ContainsDigits reports whether the digit sequence occurs within the digits of s,
// regardless of punctuation.
func ContainsDigits(s, digits string) bool {
	return digits != "" && strings.Contains(DigitsOnly(s), digits)
}

// DigitsOnly strips everything but decimal digits; "(11) 98765-4321" -> "11987654321".
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
