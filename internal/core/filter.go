package core

import "strings"

// Criteria narrows which expenses are displayed. The zero value (empty
// search, no category, no bounds) matches everything.
type Criteria struct {
	Category Category
	Search   string
	Start    Date
	End      Date
}

// Matches applies the combined predicate: category AND search AND date range.
func (c Criteria) Matches(e Expense) bool {
	if c.Category != "" && c.Category != All && e.Category != c.Category {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(c.Search)); term != "" {
		title := strings.ToLower(e.Title)
		category := strings.ToLower(string(e.Category))
		if !strings.Contains(title, term) && !strings.Contains(category, term) {
			return false
		}
	}
	// The range applies only when both bounds are set; bounds are inclusive.
	if !c.Start.IsZero() && !c.End.IsZero() {
		if e.Date.Before(c.Start.Time) || e.Date.After(c.End.Time) {
			return false
		}
	}
	return true
}

// Filter returns the expenses matching c, preserving input order.
// It never mutates its input and always returns a fresh slice.
func Filter(expenses []Expense, c Criteria) []Expense {
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if c.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Total sums the amounts of the given expenses. Zero for an empty slice.
func Total(expenses []Expense) Amount {
	var cents int64
	for _, e := range expenses {
		cents += e.Amount.Cents
	}
	return Amount{Cents: cents}
}

// FilterTotal derives the displayed subset and its running total in one pass
// over the result.
func FilterTotal(expenses []Expense, c Criteria) ([]Expense, Amount) {
	filtered := Filter(expenses, c)
	return filtered, Total(filtered)
}
