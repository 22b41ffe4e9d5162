// Package ranking orders dictionary entries by relevance to a query.
package ranking

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/at-ishikawa/hanfr/internal/krdict"
	"github.com/at-ishikawa/hanfr/internal/textnorm"
)

const (
	exactHeadwordBonus       = 100
	headwordPrefixBonus      = 30
	queryPrefixBonus         = 20
	maxLengthBonus           = 20
	lengthPenaltyPerRune     = 2
	shortWordBonus           = 10
	shortWordMaxLength       = 3
	exactTranslationBonus    = 50
	translationPrefixBonus   = 25
	translationContainsBonus = 15
	definitionContainsBonus  = 5
)

// Score returns the relevance score of entry for query.
func Score(entry krdict.Entry, query string, direction krdict.Direction) int {
	q := textnorm.Normalize(query)
	word := textnorm.Normalize(entry.Word)

	score := 0
	if word == q {
		score += exactHeadwordBonus
	}
	if strings.HasPrefix(word, q) {
		score += headwordPrefixBonus
	}
	// The query may be a longer phrase built on the headword.
	if strings.HasPrefix(q, word) {
		score += queryPrefixBonus
	}

	// Base forms are usually shorter than their derivatives.
	length := utf8.RuneCountInString(entry.Word)
	score += max(0, maxLengthBonus-lengthPenaltyPerRune*length)
	if length <= shortWordMaxLength {
		score += shortWordBonus
	}

	if direction == krdict.FrenchToKorean {
		score += translationScore(entry.Senses, q)
	}
	return score
}

// translationScore awards the exact translation bonus once, for the first
// matching sense, while the partial bonuses accumulate over every sense.
func translationScore(senses []krdict.Sense, q string) int {
	score := 0
	for _, sense := range senses {
		if textnorm.Normalize(sense.TranslationWord()) == q {
			score += exactTranslationBonus
			break
		}
	}
	for _, sense := range senses {
		transWord := textnorm.Normalize(sense.TranslationWord())
		transDef := textnorm.Normalize(sense.TranslationDefinition())
		if strings.HasPrefix(transWord, q) {
			score += translationPrefixBonus
		}
		if strings.Contains(transWord, q) {
			score += translationContainsBonus
		}
		if strings.Contains(transDef, q) {
			score += definitionContainsBonus
		}
	}
	return score
}

// Rank returns a new slice of entries ordered by descending score.
// Entries with equal scores keep their input order.
func Rank(entries []krdict.Entry, query string, direction krdict.Direction) []krdict.Entry {
	type scored struct {
		entry krdict.Entry
		score int
	}
	scoredEntries := make([]scored, len(entries))
	for i, entry := range entries {
		scoredEntries[i] = scored{entry: entry, score: Score(entry, query, direction)}
	}
	sort.SliceStable(scoredEntries, func(i, j int) bool {
		return scoredEntries[i].score > scoredEntries[j].score
	})

	ranked := make([]krdict.Entry, len(scoredEntries))
	for i, s := range scoredEntries {
		ranked[i] = s.entry
	}
	return ranked
}
