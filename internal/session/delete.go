package session

import (
	"context"

	"tracker/internal/core"
)

// Remover is the slice of the API client the delete flow needs.
type Remover interface {
	Delete(ctx context.Context, id string) (string, error)
}

// Deleter runs the delete flow: confirm with the user, dispatch, then drop
// exactly the confirmed record from the client data store.
type Deleter struct {
	api     Remover
	store   *Store
	confirm func(core.Expense) bool
}

// NewDeleter wires the flow. confirm is consulted before every dispatch; a
// false return aborts without touching the server.
func NewDeleter(api Remover, s *Store, confirm func(core.Expense) bool) *Deleter {
	return &Deleter{api: api, store: s, confirm: confirm}
}

// Delete removes the record with the given id. It reports whether a delete
// was actually dispatched and confirmed; a declined confirmation returns
// (false, nil). On failure the local list is left unchanged.
func (d *Deleter) Delete(ctx context.Context, id string) (bool, error) {
	e, ok := d.store.Get(id)
	if !ok {
		e = core.Expense{ID: id}
	}
	if d.confirm != nil && !d.confirm(e) {
		return false, nil
	}

	deletedID, err := d.api.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	// Remove by the id the server confirmed, compared canonically.
	d.store.Remove(deletedID)
	return true, nil
}
