package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Food          Category = "Food"
	Transport     Category = "Transport"
	Shopping      Category = "Shopping"
	Bills         Category = "Bills"
	Entertainment Category = "Entertainment"
	Health        Category = "Health"
	Education     Category = "Education"
	Investment    Category = "Investment"
	Other         Category = "Other"

	// All is a filter-only sentinel, never a stored value.
	All Category = "All"
)

type (
	Category string

	Expense struct {
		ID          string    `json:"id"`
		Title       string    `json:"title"`
		Amount      Amount    `json:"amount"`
		Category    Category  `json:"category"`
		Date        Date      `json:"date"`
		Description string    `json:"description"`
		CreatedAt   time.Time `json:"createdAt"`
		UpdatedAt   time.Time `json:"updatedAt"`
	}
)

var (
	ErrEmptyTitle      = errors.New("empty title")
	ErrEmptyCategory   = errors.New("empty category")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrZeroDate        = errors.New("date cannot be zero")
)

// Categories returns the storable category set, in display order.
// All is excluded: it only widens filters.
func Categories() []Category {
	return []Category{Food, Transport, Shopping, Bills, Entertainment, Health, Education, Investment, Other}
}

func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

func (e Expense) Validate() error {
	if len(strings.TrimSpace(e.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(e.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if strings.TrimSpace(string(e.Category)) == "" {
		return ErrEmptyCategory
	}
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	if e.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if e.Date.IsZero() {
		return ErrZeroDate
	}
	if len(e.Description) > 1000 {
		return errors.New("description too long (max 1000 characters)")
	}
	return nil
}

// SameID reports whether two record identifiers refer to the same record.
// Ids from different paths (create response vs list) may carry stray
// whitespace, so comparison goes through a canonical form rather than
// plain equality.
func SameID(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	return a != "" && a == b
}
