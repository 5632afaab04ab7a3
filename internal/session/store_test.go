package session

import (
	"testing"

	"tracker/internal/core"
)

func sample(id, title string, cents int64, category core.Category, date core.Date) core.Expense {
	return core.Expense{ID: id, Title: title, Amount: core.Amount{Cents: cents}, Category: category, Date: date}
}

func TestLoadAndAllCopy(t *testing.T) {
	s := NewStore()
	src := []core.Expense{sample("a", "Coffee", 350, core.Food, core.NewDate(2026, 8, 1))}
	s.Load(src)
	src[0].Title = "mutated"

	got := s.All()
	if got[0].Title != "Coffee" {
		t.Fatal("Load shares backing array with caller")
	}
	got[0].Title = "mutated again"
	if fresh := s.All(); fresh[0].Title != "Coffee" {
		t.Fatal("All shares backing array with caller")
	}
}

func TestPrependPutsNewestFirst(t *testing.T) {
	s := NewStore()
	s.Load([]core.Expense{sample("a", "Coffee", 350, core.Food, core.NewDate(2026, 8, 1))})
	s.Prepend(sample("b", "Train", 1200, core.Transport, core.NewDate(2026, 8, 2)))

	got := s.All()
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("order after prepend: %+v", got)
	}
}

func TestReplaceKeepsPositionAndNeighbors(t *testing.T) {
	s := NewStore()
	s.Load([]core.Expense{
		sample("a", "Coffee", 350, core.Food, core.NewDate(2026, 8, 3)),
		sample("b", "Train", 1200, core.Transport, core.NewDate(2026, 8, 2)),
		sample("c", "Rent", 90000, core.Bills, core.NewDate(2026, 8, 1)),
	})

	if !s.Replace(sample("b", "Taxi", 2000, core.Transport, core.NewDate(2026, 8, 2))) {
		t.Fatal("existing record not replaced")
	}
	got := s.All()
	if got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "c" {
		t.Fatalf("order changed: %+v", got)
	}
	if got[1].Title != "Taxi" || got[1].Amount.Cents != 2000 {
		t.Fatalf("record not swapped: %+v", got[1])
	}
	if s.Replace(sample("zz", "Ghost", 1, core.Other, core.NewDate(2026, 8, 1))) {
		t.Fatal("replace reported success for unknown id")
	}
}

func TestRemoveComparesIdsCanonically(t *testing.T) {
	s := NewStore()
	s.Load([]core.Expense{
		sample("a", "Coffee", 350, core.Food, core.NewDate(2026, 8, 2)),
		sample("b", "Train", 1200, core.Transport, core.NewDate(2026, 8, 1)),
	})

	// The id from the delete response may carry stray whitespace.
	if !s.Remove("  a ") {
		t.Fatal("whitespace-padded id did not match")
	}
	got := s.All()
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("after remove: %+v", got)
	}
	if s.Remove("a") {
		t.Fatal("second remove of same id reported success")
	}
}

func TestFilteredDerivesSubsetAndTotal(t *testing.T) {
	s := NewStore()
	s.Load([]core.Expense{
		sample("a", "Coffee", 350, core.Food, core.NewDate(2026, 8, 2)),
		sample("b", "Train", 1200, core.Transport, core.NewDate(2026, 8, 1)),
		sample("c", "Lunch", 900, core.Food, core.NewDate(2026, 7, 30)),
	})

	got, total := s.Filtered(core.Criteria{Category: core.Food})
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("filtered: %+v", got)
	}
	if total.Cents != 1250 {
		t.Fatalf("total = %d cents", total.Cents)
	}
}
