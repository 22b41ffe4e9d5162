package state

import (
	"context"
	"math"
)

// QuizStats counts the answers given across every static quiz session.
type QuizStats struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

// Percentage is the rounded share of correct answers, or 0 before any answer.
func (s QuizStats) Percentage() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Correct) * 100 / float64(s.Total)))
}

type QuizStatsRepository struct {
	cell *Cell[QuizStats]
}

func NewQuizStatsRepository(store Store) *QuizStatsRepository {
	return &QuizStatsRepository{
		cell: NewCell(store, KeyQuizStats, QuizStats{}),
	}
}

func (r *QuizStatsRepository) Get(ctx context.Context) (QuizStats, error) {
	return r.cell.Get(ctx)
}

// Record counts one answer.
func (r *QuizStatsRepository) Record(ctx context.Context, correct bool) (QuizStats, error) {
	return r.cell.Update(ctx, func(current QuizStats) QuizStats {
		current.Total++
		if correct {
			current.Correct++
		}
		return current
	})
}

func (r *QuizStatsRepository) Reset(ctx context.Context) error {
	return r.cell.Set(ctx, QuizStats{})
}
