// Package state keeps the user's local state: search history, favorites,
// preferences and lifetime quiz statistics.
//
// Values live in a Store keyed by name. A Cell reads its key once, on first
// use, and writes it back on every change.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Status is the hydration state of a value.
type Status int

const (
	// Unloaded means the value was never read from the store.
	Unloaded Status = iota
	// Loaded means the value was read from, or written to, the store.
	Loaded
	// Absent means the store has no value and the initial value is in use.
	Absent
)

func (s Status) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Absent:
		return "absent"
	default:
		return "unloaded"
	}
}

// ErrNotFound is returned when an item to remove does not exist.
var ErrNotFound = errors.New("not found")

// Store is a string-keyed store of encoded values.
//
//go:generate mockgen -source=store.go -destination=../mocks/state/mock_store.go -package=mock_state
type Store interface {
	// Load returns the value of key with Loaded, or nil with Absent when the
	// key was never saved.
	Load(ctx context.Context, key string) ([]byte, Status, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Cell is one typed value of a Store. It is safe for concurrent use.
type Cell[T any] struct {
	store   Store
	key     string
	initial T

	mu     sync.Mutex
	status Status
	value  T
}

// NewCell returns a cell for key, which holds initial while the key is absent.
func NewCell[T any](store Store, key string, initial T) *Cell[T] {
	return &Cell[T]{
		store:   store,
		key:     key,
		initial: initial,
	}
}

// Status returns the hydration state of the cell.
func (c *Cell[T]) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Get returns the value, reading it from the store on first use.
func (c *Cell[T]) Get(ctx context.Context) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.hydrate(ctx); err != nil {
		var zero T
		return zero, err
	}
	return c.value, nil
}

// Set replaces the value. The stored value is read first when the cell was
// never hydrated, so an early write cannot race with the first read.
func (c *Cell[T]) Set(ctx context.Context, value T) error {
	_, err := c.Update(ctx, func(T) T { return value })
	return err
}

// Update applies fn to the current value and saves the result.
func (c *Cell[T]) Update(ctx context.Context, fn func(current T) T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.hydrate(ctx); err != nil {
		var zero T
		return zero, err
	}

	next := fn(c.value)
	encoded, err := json.Marshal(next)
	if err != nil {
		return c.value, fmt.Errorf("json.Marshal(%s) > %w", c.key, err)
	}
	if err := c.store.Save(ctx, c.key, encoded); err != nil {
		return c.value, fmt.Errorf("store.Save(%s) > %w", c.key, err)
	}
	c.value = next
	c.status = Loaded
	return next, nil
}

func (c *Cell[T]) hydrate(ctx context.Context) error {
	if c.status != Unloaded {
		return nil
	}
	data, status, err := c.store.Load(ctx, c.key)
	if err != nil {
		return fmt.Errorf("store.Load(%s) > %w", c.key, err)
	}
	if status != Loaded {
		c.value = c.initial
		c.status = Absent
		return nil
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("json.Unmarshal(%s) > %w", c.key, err)
	}
	c.value = value
	c.status = Loaded
	return nil
}

// MemoryStore is a Store kept in memory.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	if !ok {
		return nil, Absent, nil
	}
	return append([]byte(nil), value...), Loaded, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}
