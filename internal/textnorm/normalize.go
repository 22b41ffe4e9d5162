// Package textnorm folds text so that comparisons ignore case and accents.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize decomposes s, drops combining marks and lowercases the result.
// "Été" becomes "ete". Hangul syllables stay decomposed into jamo, so a
// partial syllable such as "사라" is a prefix of "사랑".
//
// Every headword, query and translation field must go through Normalize
// before being compared with another one.
func Normalize(s string) string {
	// transform.Chain keeps state, so every call needs a fresh chain.
	folded, _, err := transform.String(newFolder(), s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Contains reports whether the normalized form of s contains the normalized
// form of substr.
func Contains(s, substr string) bool {
	return strings.Contains(Normalize(s), Normalize(substr))
}

func newFolder() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
}
