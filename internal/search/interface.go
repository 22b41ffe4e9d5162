package search

import (
	"context"

	"github.com/at-ishikawa/hanfr/internal/krdict"
)

//go:generate mockgen -source=interface.go -destination=../mocks/search/mock_search.go -package=mock_search

// Lookuper runs a single dictionary query.
type Lookuper interface {
	Lookup(ctx context.Context, query krdict.Query) ([]krdict.Entry, error)
}

// Translator renders French text in Korean. It reports false when no
// translation is available and never fails otherwise.
type Translator interface {
	Translate(ctx context.Context, text string) (string, bool)
}
