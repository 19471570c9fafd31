package extractors

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var parenthesized = regexp.MustCompile(`\([^)]*\)`)

// StripAccents removes combining marks, so "Työntekijät" becomes "Tyontekijat".
func StripAccents(s string) string {
	// transform.Chain is stateful, build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Fold returns the accent-free, lower-cased form of s used for matching.
// Output text always keeps the original spelling.
func Fold(s string) string {
	return strings.ToLower(StripAccents(s))
}

// StripParens removes parenthesized substrings together with their
// parentheses and trims the result.
func StripParens(s string) string {
	return strings.TrimSpace(parenthesized.ReplaceAllString(s, ""))
}

// ContainsAll reports whether folded contains every keyword. Keywords are
// folded before comparison; an empty keyword set never matches.
func ContainsAll(folded string, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	for _, k := range keywords {
		if !strings.Contains(folded, Fold(k)) {
			return false
		}
	}
	return true
}
