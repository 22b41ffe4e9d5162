package search

import (
	"strings"

	"github.com/at-ishikawa/hanfr/internal/krdict"
	"github.com/at-ishikawa/hanfr/internal/textnorm"
)

// FilterSenses keeps, for every entry, the senses whose translation word or
// definition contains query. An entry without any such sense keeps all of
// its senses, and an entry without senses is dropped. The input is not modified.
func FilterSenses(entries []krdict.Entry, query string) []krdict.Entry {
	q := textnorm.Normalize(query)
	filtered := make([]krdict.Entry, 0, len(entries))
	for _, entry := range entries {
		matched := make([]krdict.Sense, 0, len(entry.Senses))
		for _, sense := range entry.Senses {
			if strings.Contains(textnorm.Normalize(sense.TranslationWord()), q) ||
				strings.Contains(textnorm.Normalize(sense.TranslationDefinition()), q) {
				matched = append(matched, sense)
			}
		}
		if len(matched) == 0 {
			matched = entry.Senses
		}
		if len(matched) == 0 {
			continue
		}
		filtered = append(filtered, entry.WithSenses(matched))
	}
	return filtered
}

// Dedupe drops entries whose target code was already seen, keeping the
// first occurrence order.
func Dedupe(entries []krdict.Entry) []krdict.Entry {
	seen := make(map[string]struct{}, len(entries))
	unique := make([]krdict.Entry, 0, len(entries))
	for _, entry := range entries {
		if _, ok := seen[entry.TargetCode]; ok {
			continue
		}
		seen[entry.TargetCode] = struct{}{}
		unique = append(unique, entry)
	}
	return unique
}
