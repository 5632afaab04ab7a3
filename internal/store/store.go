// Package store defines the persistence port for expense records and the
// helpers shared by its backends.
package store

import (
	"context"
	"errors"

	"tracker/internal/core"
)

var (
	// ErrNotFound is returned by Get, Update and Delete when the id does not
	// resolve to a record.
	ErrNotFound = errors.New("expense not found")

	// ErrMissingAmount is returned by Create when the amount field is not
	// provided. Unlike title and category, an absent amount is not caught by
	// record validation because a stored amount of zero is legal.
	ErrMissingAmount = errors.New("missing amount")
)

// Store is the persistence collaborator: durable CRUD over Expense records.
// Implementations assign ids on Create, manage createdAt/updatedAt, and
// enforce field constraints at write time.
type Store interface {
	// List returns all expenses ordered by date descending (newest first).
	List(ctx context.Context) ([]core.Expense, error)
	Get(ctx context.Context, id string) (core.Expense, error)
	Create(ctx context.Context, f Fields) (core.Expense, error)
	// Update replaces the provided editable fields of the record at id and
	// returns the updated record. Absent fields are left untouched.
	Update(ctx context.Context, id string, f Fields) (core.Expense, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// Fields carries the editable fields of an expense for create and update
// requests. Nil means "not provided": updates leave the field alone and
// creates fall back to defaults where the schema has one.
type Fields struct {
	Title       *string        `json:"title"`
	Amount      *core.Amount   `json:"amount"`
	Category    *core.Category `json:"category"`
	Date        *core.Date     `json:"date"`
	Description *string        `json:"description"`
}
