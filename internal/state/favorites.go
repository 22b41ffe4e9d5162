package state

import (
	"context"
	"slices"

	"github.com/at-ishikawa/hanfr/internal/krdict"
)

// MaxFavorites is the number of favorite entries kept.
const MaxFavorites = 200

// Favorites is the list of saved dictionary entries, newest first.
type Favorites struct {
	cell *Cell[[]krdict.Entry]
}

func NewFavorites(store Store) *Favorites {
	return &Favorites{
		cell: NewCell(store, KeyFavorites, []krdict.Entry{}),
	}
}

// Add saves entry unless an entry with the same target code is already saved.
// It reports whether the entry was added.
func (f *Favorites) Add(ctx context.Context, entry krdict.Entry) (bool, error) {
	added := false
	_, err := f.cell.Update(ctx, func(current []krdict.Entry) []krdict.Entry {
		if indexOf(current, entry.TargetCode) >= 0 {
			return current
		}
		added = true
		next := append([]krdict.Entry{entry}, current...)
		if len(next) > MaxFavorites {
			next = next[:MaxFavorites]
		}
		return next
	})
	return added, err
}

// Remove deletes the entry with targetCode.
func (f *Favorites) Remove(ctx context.Context, targetCode string) error {
	found := false
	_, err := f.cell.Update(ctx, func(current []krdict.Entry) []krdict.Entry {
		i := indexOf(current, targetCode)
		if i < 0 {
			return current
		}
		found = true
		return slices.Delete(slices.Clone(current), i, i+1)
	})
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

// Toggle adds entry when it is not saved and removes it otherwise.
// It reports whether the entry is saved afterwards.
func (f *Favorites) Toggle(ctx context.Context, entry krdict.Entry) (bool, error) {
	saved, err := f.Contains(ctx, entry.TargetCode)
	if err != nil {
		return false, err
	}
	if saved {
		return false, f.Remove(ctx, entry.TargetCode)
	}
	return f.Add(ctx, entry)
}

func (f *Favorites) Contains(ctx context.Context, targetCode string) (bool, error) {
	entries, err := f.cell.Get(ctx)
	if err != nil {
		return false, err
	}
	return indexOf(entries, targetCode) >= 0, nil
}

func (f *Favorites) List(ctx context.Context) ([]krdict.Entry, error) {
	entries, err := f.cell.Get(ctx)
	return slices.Clone(entries), err
}

func (f *Favorites) Clear(ctx context.Context) error {
	return f.cell.Set(ctx, []krdict.Entry{})
}

func indexOf(entries []krdict.Entry, targetCode string) int {
	return slices.IndexFunc(entries, func(e krdict.Entry) bool {
		return e.TargetCode == targetCode
	})
}
