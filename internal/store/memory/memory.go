// Package memory provides an in-memory expense store. It is the default
// backend for local runs and the double used across the test suite.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"tracker/internal/core"
	"tracker/internal/store"
)

type Store struct {
	mu    sync.Mutex
	items map[string]core.Expense
	now   func() time.Time
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		items: make(map[string]core.Expense),
		now:   time.Now,
	}
}

// NewWithClock pins the store's clock, for tests.
func NewWithClock(now func() time.Time) *Store {
	s := New()
	s.now = now
	return s
}

func (s *Store) List(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Expense, 0, len(s.items))
	for _, e := range s.items {
		out = append(out, e)
	}
	// Newest date first; same-day records newest-created first.
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) Get(_ context.Context, id string) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[strings.TrimSpace(id)]
	if !ok {
		return core.Expense{}, store.ErrNotFound
	}
	return e, nil
}

func (s *Store) Create(_ context.Context, f store.Fields) (core.Expense, error) {
	e, err := store.Build(f, s.now())
	if err != nil {
		return core.Expense{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[e.ID] = e
	return e, nil
}

func (s *Store) Update(_ context.Context, id string, f store.Fields) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id = strings.TrimSpace(id)
	existing, ok := s.items[id]
	if !ok {
		return core.Expense{}, store.ErrNotFound
	}
	updated, err := store.MergeUpdate(existing, f, s.now())
	if err != nil {
		return core.Expense{}, err
	}
	s.items[id] = updated
	return updated, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id = strings.TrimSpace(id)
	if _, ok := s.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *Store) Close() error {
	return nil
}
