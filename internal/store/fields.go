package store

import (
	"time"

	"github.com/google/uuid"

	"tracker/internal/core"
)

// Build assembles a new record from f, assigning an id and timestamps and
// applying defaults: the date falls back to today, the description to empty.
// Amount has no default and must be provided. The result is validated before
// being returned.
func Build(f Fields, now time.Time) (core.Expense, error) {
	if f.Amount == nil {
		return core.Expense{}, ErrMissingAmount
	}
	e := core.Expense{
		ID:        uuid.NewString(),
		Date:      core.DateOf(now.UTC()),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	e = Merge(e, f)
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

// Merge overlays the provided fields of f onto e; id and createdAt are not
// editable and stay as they are. The caller owns bumping updatedAt.
func Merge(e core.Expense, f Fields) core.Expense {
	if f.Title != nil {
		e.Title = *f.Title
	}
	if f.Amount != nil {
		e.Amount = *f.Amount
	}
	if f.Category != nil {
		e.Category = *f.Category
	}
	if f.Date != nil && !f.Date.IsZero() {
		e.Date = *f.Date
	}
	if f.Description != nil {
		e.Description = *f.Description
	}
	return e
}

// MergeUpdate applies f to an existing record, revalidates it and bumps
// updatedAt.
func MergeUpdate(e core.Expense, f Fields, now time.Time) (core.Expense, error) {
	merged := Merge(e, f)
	merged.UpdatedAt = now.UTC()
	if err := merged.Validate(); err != nil {
		return core.Expense{}, err
	}
	return merged, nil
}
