package quiz

import (
	"fmt"
	"math/rand/v2"

	"github.com/at-ishikawa/hanfr/internal/krdict"
	"github.com/at-ishikawa/hanfr/internal/vocabulary"
)

const staticChoiceCount = 4

// Accepted range of the number of questions of a vocabulary quiz.
const (
	MinStaticCount = 5
	MaxStaticCount = 50
)

// StaticGenerator builds questions from a fixed word list.
// The list is never modified, so one generator can serve concurrent callers.
type StaticGenerator struct {
	words   []vocabulary.Word
	pool    []pair
	newRand func() *rand.Rand
}

// NewStaticGenerator returns a generator over words. Every direction needs at
// least four distinct target terms so that each question has four distinct choices.
func NewStaticGenerator(words []vocabulary.Word) (*StaticGenerator, error) {
	pool := make([]pair, 0, len(words))
	for _, word := range words {
		pool = append(pool, pair{korean: word.Korean, french: word.French})
	}
	for _, direction := range krdict.AllDirections {
		if n := distinctAnswers(pool, direction); n < staticChoiceCount {
			return nil, &InsufficientDataError{
				Reason: fmt.Sprintf("the vocabulary needs at least %d distinct %s answers, got %d", staticChoiceCount, direction.Label(), n),
			}
		}
	}

	return &StaticGenerator{
		words:   words,
		pool:    pool,
		newRand: newRand,
	}, nil
}

// WithCategories returns a generator limited to the words in categories.
func (g *StaticGenerator) WithCategories(categories ...string) (*StaticGenerator, error) {
	filtered, err := NewStaticGenerator(vocabulary.FilterByCategory(g.words, categories...))
	if err != nil {
		return nil, err
	}
	filtered.newRand = g.newRand
	return filtered, nil
}

// Size is the number of words in the pool.
func (g *StaticGenerator) Size() int {
	return len(g.pool)
}

// Generate returns min(count, Size()) questions with four choices each.
// No word is asked twice.
func (g *StaticGenerator) Generate(direction krdict.Direction, count int) []Question {
	rng := g.newRand()
	selected := Shuffle(rng, g.pool)
	selected = selected[:min(max(count, 0), len(selected))]

	questions := make([]Question, 0, len(selected))
	for _, item := range selected {
		question, ok := buildQuestion(rng, item, g.pool, direction, staticChoiceCount-1)
		if !ok {
			// Unreachable: NewStaticGenerator guarantees enough distinct answers.
			continue
		}
		questions = append(questions, question)
	}
	return questions
}
