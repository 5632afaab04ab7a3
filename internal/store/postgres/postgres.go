// Package postgres persists expenses in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"tracker/internal/core"
	"tracker/internal/store"

	_ "github.com/lib/pq"
)

type Repository struct {
	db  *sql.DB
	now func() time.Time
}

var _ store.Store = (*Repository)(nil)

func New(connStr string) (*Repository, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	r := &Repository{db: db, now: time.Now}
	if err := r.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *Repository) ensureSchema() error {
	query := `
    CREATE TABLE IF NOT EXISTS expenses (
        id TEXT PRIMARY KEY,
        title TEXT NOT NULL CHECK (length(trim(title)) > 0),
        amount_cents BIGINT NOT NULL CHECK (amount_cents >= 0),
        category TEXT NOT NULL CHECK (length(trim(category)) > 0),
        date DATE NOT NULL,
        description TEXT NOT NULL DEFAULT '',
        created_at TIMESTAMPTZ NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL
    );
    CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses (date DESC, created_at DESC);`

	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("create expenses table: %w", err)
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

const selectColumns = `id, title, amount_cents, category, date, description, created_at, updated_at`

func (r *Repository) List(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM expenses ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

func (r *Repository) Get(ctx context.Context, id string) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM expenses WHERE id = $1`, strings.TrimSpace(id))
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, store.ErrNotFound
	}
	return e, err
}

func (r *Repository) Create(ctx context.Context, f store.Fields) (core.Expense, error) {
	e, err := store.Build(f, r.now())
	if err != nil {
		return core.Expense{}, err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, title, amount_cents, category, date, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.Title, e.Amount.Cents, string(e.Category), e.Date.Time, e.Description, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}
	return e, nil
}

func (r *Repository) Update(ctx context.Context, id string, f store.Fields) (core.Expense, error) {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return core.Expense{}, err
	}
	updated, err := store.MergeUpdate(existing, f, r.now())
	if err != nil {
		return core.Expense{}, err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses
		 SET title = $1, amount_cents = $2, category = $3, date = $4, description = $5, updated_at = $6
		 WHERE id = $7`,
		updated.Title, updated.Amount.Cents, string(updated.Category), updated.Date.Time,
		updated.Description, updated.UpdatedAt, updated.ID)
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.Expense{}, store.ErrNotFound
	}
	return updated, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense rows: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		e        core.Expense
		category string
		date     time.Time
	)
	err := row.Scan(&e.ID, &e.Title, &e.Amount.Cents, &category, &date, &e.Description, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return core.Expense{}, err
	}
	e.Category = core.Category(category)
	e.Date = core.DateOf(date)
	return e, nil
}
