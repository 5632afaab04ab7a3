// Package session holds the client-side state of one interactive session:
// the in-memory expense list mirrored from the server, the single draft
// form, and the delete flow. Mutations to the list are serialized so two
// responses resolving out of order cannot lose an update.
package session

import (
	"sync"

	"tracker/internal/core"
)

// Store is the client data store: the expense list as last confirmed by the
// server, patched eagerly after each successful mutation.
type Store struct {
	mu       sync.Mutex
	expenses []core.Expense
}

func NewStore() *Store {
	return &Store{}
}

// Load replaces the whole list with a fresh server snapshot.
func (s *Store) Load(expenses []core.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = make([]core.Expense, len(expenses))
	copy(s.expenses, expenses)
}

// All returns a copy of the current list in display order.
func (s *Store) All() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.expenses)
}

// Get looks up a record by canonical id equality.
func (s *Store) Get(id string) (core.Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.expenses {
		if core.SameID(e.ID, id) {
			return e, true
		}
	}
	return core.Expense{}, false
}

// Prepend puts a freshly created record at the head of the list.
func (s *Store) Prepend(e core.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append([]core.Expense{e}, s.expenses...)
}

// Replace swaps the record with e's id for e, leaving every other entry and
// the list order untouched. It reports whether a matching record was found.
func (s *Store) Replace(e core.Expense) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.expenses {
		if core.SameID(s.expenses[i].ID, e.ID) {
			s.expenses[i] = e
			return true
		}
	}
	return false
}

// Remove drops the record matching id. Ids are compared canonically, not by
// plain equality, because create and list responses may carry different
// representations of the same id.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.expenses {
		if core.SameID(s.expenses[i].ID, id) {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return true
		}
	}
	return false
}

// Filtered derives the displayed subset and its total from the current list.
func (s *Store) Filtered(c core.Criteria) ([]core.Expense, core.Amount) {
	return core.FilterTotal(s.All(), c)
}
