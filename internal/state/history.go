package state

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/at-ishikawa/hanfr/internal/krdict"
)

// MaxHistory is the number of searches kept in the history.
const MaxHistory = 50

// HistoryItem is one past search.
type HistoryItem struct {
	Query     string           `json:"q" yaml:"q"`
	Direction krdict.Direction `json:"dir" yaml:"dir"`
	At        time.Time        `json:"at" yaml:"at"`
}

// History is the list of recent searches, newest first.
type History struct {
	cell *Cell[[]HistoryItem]
	now  func() time.Time
}

func NewHistory(store Store) *History {
	return &History{
		cell: NewCell(store, KeyHistory, []HistoryItem{}),
		now:  time.Now,
	}
}

// Push records a search. An older search with the same query and direction
// is replaced, and only the newest MaxHistory searches are kept.
func (h *History) Push(ctx context.Context, query string, direction krdict.Direction) ([]HistoryItem, error) {
	query = strings.TrimSpace(query)
	item := HistoryItem{Query: query, Direction: direction, At: h.now()}
	next, err := h.cell.Update(ctx, func(current []HistoryItem) []HistoryItem {
		next := make([]HistoryItem, 0, min(len(current)+1, MaxHistory))
		next = append(next, item)
		for _, existing := range current {
			if len(next) == MaxHistory {
				break
			}
			if existing.Query == item.Query && existing.Direction == item.Direction {
				continue
			}
			next = append(next, existing)
		}
		return next
	})
	return slices.Clone(next), err
}

// List returns every search, newest first.
func (h *History) List(ctx context.Context) ([]HistoryItem, error) {
	items, err := h.cell.Get(ctx)
	return slices.Clone(items), err
}

// Recent returns up to limit of the newest searches in direction.
func (h *History) Recent(ctx context.Context, direction krdict.Direction, limit int) ([]HistoryItem, error) {
	items, err := h.cell.Get(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByDirection(items, direction, limit), nil
}

// Remove deletes the search at index, counted from the newest.
func (h *History) Remove(ctx context.Context, index int) error {
	found := false
	_, err := h.cell.Update(ctx, func(current []HistoryItem) []HistoryItem {
		if index < 0 || index >= len(current) {
			return current
		}
		found = true
		return slices.Delete(slices.Clone(current), index, index+1)
	})
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (h *History) Clear(ctx context.Context) error {
	return h.cell.Set(ctx, []HistoryItem{})
}

// FilterByDirection returns up to limit items in direction, keeping their order.
// A limit of zero or less keeps every matching item.
func FilterByDirection(items []HistoryItem, direction krdict.Direction, limit int) []HistoryItem {
	filtered := make([]HistoryItem, 0)
	for _, item := range items {
		if item.Direction != direction {
			continue
		}
		filtered = append(filtered, item)
		if limit > 0 && len(filtered) == limit {
			break
		}
	}
	return filtered
}
