package events

import (
	"encoding/json"
	"time"
)

const (
	TypeCreated = "expense.created"
	TypeUpdated = "expense.updated"
	TypeDeleted = "expense.deleted"
)

// ExpenseEvent is the lightweight change notification published after a
// mutation commits. Consumers fetch the full record from the store when
// they need it.
type ExpenseEvent struct {
	Type       string    `json:"type"`
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewExpenseEvent(eventType, id string) *ExpenseEvent {
	return &ExpenseEvent{
		Type:       eventType,
		ID:         id,
		OccurredAt: time.Now(),
	}
}

func (e *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var e ExpenseEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
