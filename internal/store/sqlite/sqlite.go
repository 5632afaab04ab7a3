// Package sqlite persists expenses in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tracker/internal/core"
	"tracker/internal/store"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db  *sql.DB
	now func() time.Time
}

var _ store.Store = (*Repository)(nil)

func New(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db, now: time.Now}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
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
		`SELECT `+selectColumns+` FROM expenses WHERE id = ?`, strings.TrimSpace(id))
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
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Amount.Cents, string(e.Category), e.Date.String(), e.Description,
		e.CreatedAt.Format(time.RFC3339Nano), e.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", e.ID,
		"title", e.Title,
		"amount_cents", e.Amount.Cents,
		"category", e.Category)

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
		 SET title = ?, amount_cents = ?, category = ?, date = ?, description = ?, updated_at = ?
		 WHERE id = ?`,
		updated.Title, updated.Amount.Cents, string(updated.Category), updated.Date.String(),
		updated.Description, updated.UpdatedAt.Format(time.RFC3339Nano), updated.ID)
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.Expense{}, store.ErrNotFound
	}
	return updated, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, strings.TrimSpace(id))
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
		e                      core.Expense
		category               string
		dateStr                string
		createdStr, updatedStr string
	)
	err := row.Scan(&e.ID, &e.Title, &e.Amount.Cents, &category, &dateStr, &e.Description, &createdStr, &updatedStr)
	if err != nil {
		return core.Expense{}, err
	}
	e.Category = core.Category(category)
	if e.Date, err = core.ParseDate(dateStr); err != nil {
		return core.Expense{}, fmt.Errorf("parse stored date %q: %w", dateStr, err)
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdStr); err != nil {
		return core.Expense{}, fmt.Errorf("parse created_at %q: %w", createdStr, err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedStr); err != nil {
		return core.Expense{}, fmt.Errorf("parse updated_at %q: %w", updatedStr, err)
	}
	return e, nil
}
