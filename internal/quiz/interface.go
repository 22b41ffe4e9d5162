package quiz

import (
	"context"

	"github.com/at-ishikawa/hanfr/internal/krdict"
	"github.com/at-ishikawa/hanfr/internal/search"
)

//go:generate mockgen -source=interface.go -destination=../mocks/quiz/mock_quiz.go -package=mock_quiz

// Resolver looks up a past search again.
type Resolver interface {
	Search(ctx context.Context, query string, direction krdict.Direction) (*search.Result, error)
}
