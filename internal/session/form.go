package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tracker/internal/core"
	"tracker/internal/store"
)

// FormState tracks the single-form lifecycle. Exactly one draft exists at a
// time.
type FormState int

const (
	Closed FormState = iota
	Creating
	Editing
)

func (s FormState) String() string {
	switch s {
	case Creating:
		return "creating"
	case Editing:
		return "editing"
	default:
		return "closed"
	}
}

var (
	ErrFormClosed  = errors.New("no draft open")
	ErrEmptyAmount = errors.New("empty amount")
)

// Draft mirrors an expense's editable fields as entered in the form. Amount
// stays raw text until submit so partial input never round-trips through a
// parse.
type Draft struct {
	Title       string
	Amount      string
	Category    core.Category
	Date        core.Date
	Description string
}

// Mutator is the slice of the API client the form needs.
type Mutator interface {
	Create(ctx context.Context, f store.Fields) (core.Expense, error)
	Update(ctx context.Context, id string, f store.Fields) (core.Expense, error)
}

// Form manages the draft state and dispatches create vs update depending on
// whether an existing record is being edited.
type Form struct {
	api   Mutator
	store *Store
	now   func() time.Time

	state     FormState
	editingID string
	draft     Draft
}

func NewForm(api Mutator, s *Store) *Form {
	return &Form{api: api, store: s, now: time.Now}
}

// NewFormWithClock fixes the date defaulted into new drafts.
func NewFormWithClock(api Mutator, s *Store, now func() time.Time) *Form {
	return &Form{api: api, store: s, now: now}
}

func (f *Form) State() FormState { return f.state }

// EditingID returns the id of the record being edited, or "" when creating.
func (f *Form) EditingID() string { return f.editingID }

func (f *Form) Draft() Draft { return f.draft }

// SetDraft overwrites the draft with the user's current input.
func (f *Form) SetDraft(d Draft) {
	f.draft = d
}

// OpenCreate resets the draft to defaults and enters the Creating state. The
// date defaults to the current calendar date.
func (f *Form) OpenCreate() {
	f.state = Creating
	f.editingID = ""
	f.draft = Draft{Date: core.DateOf(f.now().UTC())}
}

// OpenEdit populates the draft from the record's current values and enters
// Editing. The date is normalized to a plain calendar date and a missing
// description defaults to empty. Editing may be entered from any state.
func (f *Form) OpenEdit(id string) error {
	e, ok := f.store.Get(id)
	if !ok {
		return store.ErrNotFound
	}
	f.state = Editing
	f.editingID = e.ID
	f.draft = Draft{
		Title:       e.Title,
		Amount:      e.Amount.String(),
		Category:    e.Category,
		Date:        core.DateOf(e.Date.Time),
		Description: e.Description,
	}
	return nil
}

// Cancel closes the form and discards the draft.
func (f *Form) Cancel() {
	f.state = Closed
	f.editingID = ""
	f.draft = Draft{}
}

// Submit validates the draft, dispatches create or update, and patches the
// client data store with the server's returned record. Validation failures
// are rejected before any network call. On any failure the state and draft
// are preserved so the user can correct and retry.
func (f *Form) Submit(ctx context.Context) (core.Expense, error) {
	if f.state == Closed {
		return core.Expense{}, ErrFormClosed
	}

	fields, err := f.draft.fields()
	if err != nil {
		return core.Expense{}, err
	}

	var saved core.Expense
	switch f.state {
	case Creating:
		saved, err = f.api.Create(ctx, fields)
		if err != nil {
			return core.Expense{}, err
		}
		f.store.Prepend(saved)
	case Editing:
		saved, err = f.api.Update(ctx, f.editingID, fields)
		if err != nil {
			return core.Expense{}, err
		}
		f.store.Replace(saved)
	}

	f.Cancel()
	return saved, nil
}

// fields validates the draft and converts it for the wire. Title, amount and
// category are required; the rest is optional.
func (d Draft) fields() (store.Fields, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return store.Fields{}, core.ErrEmptyTitle
	}
	if strings.TrimSpace(d.Amount) == "" {
		return store.Fields{}, ErrEmptyAmount
	}
	if strings.TrimSpace(string(d.Category)) == "" {
		return store.Fields{}, core.ErrEmptyCategory
	}
	amount, err := core.ParseAmount(d.Amount)
	if err != nil {
		return store.Fields{}, fmt.Errorf("%w: %s", core.ErrInvalidAmount, err)
	}

	category := d.Category
	description := d.Description
	fields := store.Fields{
		Title:       &title,
		Amount:      &amount,
		Category:    &category,
		Description: &description,
	}
	if !d.Date.IsZero() {
		date := d.Date
		fields.Date = &date
	}
	return fields, nil
}
