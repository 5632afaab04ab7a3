package mirror

import (
	"context"
	"errors"
	"testing"

	"tracker/internal/core"
	"tracker/internal/events"
	"tracker/internal/store"
	"tracker/internal/store/memory"
)

type fakeAppender struct {
	rows []core.Expense
	fail bool
}

func (f *fakeAppender) Append(_ context.Context, e core.Expense) error {
	if f.fail {
		return errors.New("sheets unavailable")
	}
	f.rows = append(f.rows, e)
	return nil
}

func seedExpense(t *testing.T, s store.Store) core.Expense {
	t.Helper()
	title := "Coffee"
	amount := core.Amount{Cents: 15000}
	category := core.Food
	created, err := s.Create(context.Background(), store.Fields{
		Title: &title, Amount: &amount, Category: &category,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return created
}

func TestHandleCreatedMirrorsRow(t *testing.T) {
	s := memory.New()
	created := seedExpense(t, s)
	app := &fakeAppender{}
	w := NewWorker(s, app)

	if err := w.Handle(context.Background(), events.NewExpenseEvent(events.TypeCreated, created.ID)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(app.rows) != 1 || app.rows[0].ID != created.ID {
		t.Fatalf("mirrored rows: %+v", app.rows)
	}
}

func TestHandleSkipsUpdatesAndDeletes(t *testing.T) {
	s := memory.New()
	created := seedExpense(t, s)
	app := &fakeAppender{}
	w := NewWorker(s, app)

	for _, typ := range []string{events.TypeUpdated, events.TypeDeleted, "bogus"} {
		if err := w.Handle(context.Background(), events.NewExpenseEvent(typ, created.ID)); err != nil {
			t.Fatalf("handle %s: %v", typ, err)
		}
	}
	if len(app.rows) != 0 {
		t.Fatalf("non-create events mirrored %d rows", len(app.rows))
	}
}

func TestHandleCreatedGoneRecordAcks(t *testing.T) {
	// The expense was deleted before the event drained: ack, don't requeue.
	w := NewWorker(memory.New(), &fakeAppender{})
	if err := w.Handle(context.Background(), events.NewExpenseEvent(events.TypeCreated, "gone")); err != nil {
		t.Fatalf("expected nil for missing record, got %v", err)
	}
}

func TestHandleAppendFailureRequeues(t *testing.T) {
	s := memory.New()
	created := seedExpense(t, s)
	w := NewWorker(s, &fakeAppender{fail: true})

	if err := w.Handle(context.Background(), events.NewExpenseEvent(events.TypeCreated, created.ID)); err == nil {
		t.Fatal("expected error so the delivery is requeued")
	}
}
