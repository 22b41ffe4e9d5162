// Package krdict talks to the KRDict open API (한국어기초사전) and holds the
// dictionary entry model shared by the rest of hanfr.
package krdict

import "fmt"

// Direction is the lookup direction of a search or a quiz.
type Direction string

const (
	KoreanToFrench Direction = "ko-fr"
	FrenchToKorean Direction = "fr-ko"
)

// AllDirections lists the accepted direction tokens.
var AllDirections = []Direction{KoreanToFrench, FrenchToKorean}

// ParseDirection parses a direction token. An empty token means KoreanToFrench.
func ParseDirection(token string) (Direction, error) {
	if token == "" {
		return KoreanToFrench, nil
	}
	for _, d := range AllDirections {
		if string(d) == token {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid direction %q, must be one of %v", token, AllDirections)
}

// Label returns a short human label such as "KO→FR".
func (d Direction) Label() string {
	if d == FrenchToKorean {
		return "FR→KO"
	}
	return "KO→FR"
}

// Translation is one French rendering of a sense.
type Translation struct {
	Lang       string `json:"lang,omitempty"`
	Word       string `json:"word,omitempty"`
	Definition string `json:"definition,omitempty"`
}

// Sense is one meaning of an entry.
type Sense struct {
	Order       string       `json:"order,omitempty"`
	Definition  string       `json:"definition,omitempty"`
	Translation *Translation `json:"translation,omitempty"`
}

// TranslationWord returns the French equivalent term, or "" when there is none.
func (s Sense) TranslationWord() string {
	if s.Translation == nil {
		return ""
	}
	return s.Translation.Word
}

// TranslationDefinition returns the French gloss, or "" when there is none.
func (s Sense) TranslationDefinition() string {
	if s.Translation == nil {
		return ""
	}
	return s.Translation.Definition
}

// Entry is one headword returned by KRDict.
// TargetCode identifies the entry and is the deduplication key.
type Entry struct {
	TargetCode    string  `json:"targetCode"`
	Word          string  `json:"word"`
	POS           string  `json:"pos,omitempty"`
	Origin        string  `json:"origin,omitempty"`
	Pronunciation string  `json:"pronunciation,omitempty"`
	Link          string  `json:"link,omitempty"`
	Senses        []Sense `json:"senses"`
}

// PrimarySense returns the first sense of the entry.
func (e Entry) PrimarySense() (Sense, bool) {
	if len(e.Senses) == 0 {
		return Sense{}, false
	}
	return e.Senses[0], true
}

// WithSenses returns a copy of e whose sense list is senses.
func (e Entry) WithSenses(senses []Sense) Entry {
	e.Senses = senses
	return e
}
