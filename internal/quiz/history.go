package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/gammazero/workerpool"

	"github.com/at-ishikawa/hanfr/internal/krdict"
	"github.com/at-ishikawa/hanfr/internal/search"
	"github.com/at-ishikawa/hanfr/internal/state"
)

const (
	DefaultHistoryLimit = 5

	minHistoryItems     = 3
	minResolvedPairs    = 3
	minHistoryQuestions = 2
	historyChoiceCount  = 3
)

// HistoryGenerator builds questions from the user's recent searches, looked up
// again with a Resolver.
type HistoryGenerator struct {
	resolver Resolver
	limit    int
	workers  int
	newRand  func() *rand.Rand
}

func NewHistoryGenerator(resolver Resolver, limit int) *HistoryGenerator {
	if limit < minHistoryItems {
		limit = DefaultHistoryLimit
	}
	return &HistoryGenerator{
		resolver: resolver,
		limit:    limit,
		workers:  limit,
		newRand:  newRand,
	}
}

type resolution struct {
	pair pair
	ok   bool
}

// Generate returns three-choice questions for the newest searches in direction.
// It fails with an InsufficientDataError without any lookup when there are
// fewer than three such searches.
func (g *HistoryGenerator) Generate(ctx context.Context, history []state.HistoryItem, direction krdict.Direction) ([]Question, error) {
	recent := state.FilterByDirection(history, direction, g.limit)
	if len(recent) < minHistoryItems {
		return nil, &InsufficientDataError{
			Reason: fmt.Sprintf("search at least %d words in %s before starting the quiz", minHistoryItems, direction.Label()),
		}
	}

	resolutions := g.resolve(ctx, recent)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("resolve() > %w", err)
	}

	pool := make([]pair, 0, len(resolutions))
	for _, r := range resolutions {
		if r.ok {
			pool = append(pool, r.pair)
		}
	}
	if len(pool) < minResolvedPairs {
		return nil, &InsufficientDataError{
			Reason: "not enough translations are available for the quiz",
		}
	}

	rng := g.newRand()
	questions := make([]Question, 0, len(resolutions))
	for _, r := range resolutions {
		if !r.ok {
			continue
		}
		question, ok := buildQuestion(rng, r.pair, pool, direction, historyChoiceCount-1)
		if !ok {
			continue
		}
		questions = append(questions, question)
	}
	if len(questions) < minHistoryQuestions {
		return nil, &InsufficientDataError{
			Reason: "not enough valid questions, search more words first",
		}
	}
	return questions, nil
}

// resolve looks up every item concurrently and waits for all of them.
// The result keeps the order of items.
func (g *HistoryGenerator) resolve(ctx context.Context, items []state.HistoryItem) []resolution {
	resolutions := make([]resolution, len(items))
	wp := workerpool.New(min(g.workers, len(items)))
	for i, item := range items {
		wp.Submit(func() {
			resolutions[i] = g.resolveOne(ctx, item.Query)
		})
	}
	wp.StopWait()
	return resolutions
}

func (g *HistoryGenerator) resolveOne(ctx context.Context, query string) resolution {
	result, err := g.resolver.Search(ctx, query, krdict.KoreanToFrench)
	if err != nil {
		slog.Default().Warn("failed to resolve a history item",
			slog.String("query", query),
			slog.Any("error", err),
		)
		return resolution{}
	}
	return pairOf(result)
}

// pairOf takes the first sense of the first entry. The translation definition
// stands in for a missing translation word.
func pairOf(result *search.Result) resolution {
	if result == nil || len(result.Entries) == 0 {
		return resolution{}
	}
	entry := result.Entries[0]
	sense, ok := entry.PrimarySense()
	if !ok {
		return resolution{}
	}
	french := sense.TranslationWord()
	if french == "" {
		french = sense.TranslationDefinition()
	}
	if entry.Word == "" || french == "" {
		return resolution{}
	}
	return resolution{pair: pair{korean: entry.Word, french: french}, ok: true}
}
