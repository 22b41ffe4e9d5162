// Package quiz builds multiple-choice vocabulary questions, either from the
// bundled vocabulary list or from the user's recent searches.
package quiz

import (
	"errors"
	"math/rand/v2"

	"github.com/at-ishikawa/hanfr/internal/krdict"
)

// ErrInsufficientData is matched by every InsufficientDataError.
var ErrInsufficientData = errors.New("insufficient data")

// InsufficientDataError reports that there is not enough vocabulary to build a
// quiz. Reason is meant to be shown to the user.
type InsufficientDataError struct {
	Reason string
}

func (e *InsufficientDataError) Error() string {
	return e.Reason
}

func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}

// Question is one multiple-choice prompt.
type Question struct {
	Prompt        string           `json:"prompt"`
	CorrectAnswer string           `json:"correctAnswer"`
	Choices       []string         `json:"choices"`
	Direction     krdict.Direction `json:"direction"`
}

// pair is one Korean term and its French equivalent.
type pair struct {
	korean string
	french string
}

func (p pair) prompt(direction krdict.Direction) string {
	if direction == krdict.FrenchToKorean {
		return p.french
	}
	return p.korean
}

func (p pair) answer(direction krdict.Direction) string {
	if direction == krdict.FrenchToKorean {
		return p.korean
	}
	return p.french
}

// Shuffle returns a uniformly random permutation of items without modifying it.
func Shuffle[T any](rng *rand.Rand, items []T) []T {
	shuffled := append([]T(nil), items...)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// buildQuestion asks for the target term of item with distractorCount wrong
// answers drawn from pool. Distractors are distinct and never equal the correct
// answer. It returns false when pool has too few distinct distractors.
func buildQuestion(rng *rand.Rand, item pair, pool []pair, direction krdict.Direction, distractorCount int) (Question, bool) {
	correct := item.answer(direction)
	seen := map[string]bool{correct: true}
	choices := make([]string, 0, distractorCount+1)
	choices = append(choices, correct)
	for _, candidate := range Shuffle(rng, pool) {
		term := candidate.answer(direction)
		if seen[term] {
			continue
		}
		seen[term] = true
		choices = append(choices, term)
		if len(choices) == distractorCount+1 {
			break
		}
	}
	if len(choices) < distractorCount+1 {
		return Question{}, false
	}

	return Question{
		Prompt:        item.prompt(direction),
		CorrectAnswer: correct,
		Choices:       Shuffle(rng, choices),
		Direction:     direction,
	}, true
}

func distinctAnswers(pool []pair, direction krdict.Direction) int {
	seen := make(map[string]bool, len(pool))
	for _, p := range pool {
		seen[p.answer(direction)] = true
	}
	return len(seen)
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
