package mirror

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tracker/internal/core"
	"tracker/internal/events"
	"tracker/internal/store"
)

// Appender is the destination the worker writes rows to.
type Appender interface {
	Append(ctx context.Context, e core.Expense) error
}

// Consumer delivers expense events; satisfied by *events.Client.
type Consumer interface {
	Consume(ctx context.Context, handler func(*events.ExpenseEvent) error) error
}

// Worker drains the change feed and mirrors created expenses. Updates and
// deletes are acknowledged and skipped: rows are never rewritten.
type Worker struct {
	store    store.Store
	appender Appender
}

func NewWorker(s store.Store, a Appender) *Worker {
	return &Worker{store: s, appender: a}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context, consumer Consumer) error {
	return consumer.Consume(ctx, func(event *events.ExpenseEvent) error {
		return w.Handle(ctx, event)
	})
}

// Handle processes a single event. A nil return acknowledges the message.
func (w *Worker) Handle(ctx context.Context, event *events.ExpenseEvent) error {
	switch event.Type {
	case events.TypeCreated:
		return w.mirrorCreated(ctx, event.ID)
	case events.TypeUpdated, events.TypeDeleted:
		slog.DebugContext(ctx, "Skipping non-create event", "type", event.Type, "id", event.ID)
		return nil
	default:
		slog.WarnContext(ctx, "Unknown event type", "type", event.Type, "id", event.ID)
		return nil
	}
}

func (w *Worker) mirrorCreated(ctx context.Context, id string) error {
	e, err := w.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		// The record was deleted before the event drained; nothing to mirror.
		slog.InfoContext(ctx, "Expense gone before mirroring", "id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetch expense %s: %w", id, err)
	}

	if err := w.appender.Append(ctx, e); err != nil {
		return fmt.Errorf("mirror expense %s: %w", id, err)
	}

	slog.InfoContext(ctx, "Mirrored expense", "id", id, "title", e.Title)
	return nil
}
