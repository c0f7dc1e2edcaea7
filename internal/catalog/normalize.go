package catalog

import (
	"strings"
	"unicode"
)

// NormalizeLabel folds a free-text label into the key used for catalog
// comparison: lower-case, punctuation turned into spaces, whitespace
// collapsed. '+' and '#' survive so "C++" and "C#" stay distinct from "C".
func NormalizeLabel(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '+', r == '#':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens returns the normalized label split into words.
func Tokens(s string) []string {
	return strings.Fields(NormalizeLabel(s))
}

var stopwords = map[string]bool{
	"and": true, "of": true, "the": true, "in": true, "for": true,
	"with": true, "to": true, "a": true, "an": true, "or": true,
	"major": true, "minor": true, "degree": true, "studies": true,
	"science": true, "sciences": true, "ba": true, "bs": true,
}

// SignificantTokens drops stopwords and very short tokens. Used for the
// approximate free-text overlap checks.
func SignificantTokens(s string) []string {
	var out []string
	for _, t := range Tokens(s) {
		if len(t) < 3 || stopwords[t] {
			continue
		}
		out = append(out, t)
	}
	return out
}
