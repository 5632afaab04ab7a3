// Package service orchestrates expense mutations across the store and the
// change-event feed.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"tracker/internal/core"
	"tracker/internal/events"
	"tracker/internal/store"
)

// Publisher pushes expense change events somewhere downstream.
type Publisher interface {
	Publish(ctx context.Context, event *events.ExpenseEvent) error
	Close() error
}

// ExpenseService hits the store first and publishes best-effort afterwards:
// a publish failure never fails the request, the record is already durable.
type ExpenseService struct {
	store     store.Store
	publisher Publisher
}

func New(s store.Store, publisher Publisher) *ExpenseService {
	return &ExpenseService{
		store:     s,
		publisher: publisher,
	}
}

func (s *ExpenseService) List(ctx context.Context) ([]core.Expense, error) {
	return s.store.List(ctx)
}

func (s *ExpenseService) Get(ctx context.Context, id string) (core.Expense, error) {
	return s.store.Get(ctx, id)
}

func (s *ExpenseService) Create(ctx context.Context, f store.Fields) (core.Expense, error) {
	created, err := s.store.Create(ctx, f)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	s.publish(ctx, events.TypeCreated, created.ID)
	return created, nil
}

func (s *ExpenseService) Update(ctx context.Context, id string, f store.Fields) (core.Expense, error) {
	updated, err := s.store.Update(ctx, id, f)
	if err != nil {
		return core.Expense{}, err
	}
	s.publish(ctx, events.TypeUpdated, updated.ID)
	return updated, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.TypeDeleted, id)
	return nil
}

func (s *ExpenseService) publish(ctx context.Context, eventType, id string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewExpenseEvent(eventType, id)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"type", eventType, "id", id, "error", err)
	}
}

// Close releases the store and, when configured, the publisher.
func (s *ExpenseService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %v", errs)
	}
	return nil
}
