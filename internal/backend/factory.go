package backend

import (
	"fmt"
	"log/slog"

	"tracker/internal/store/memory"
	"tracker/internal/store/postgres"
	"tracker/internal/store/sqlite"
)

// Open constructs the store described by cfg. The returned cleanup is safe
// to call once on shutdown.
func Open(cfg Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case SQLite:
		repo, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: repo, Cleanup: repo.Close}, nil

	case Postgres:
		repo, err := postgres.New(cfg.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("initialize postgres store: %w", err)
		}
		logger.Info("Initialized Postgres backend")
		return &Result{Store: repo, Cleanup: repo.Close}, nil

	default:
		s := memory.New()
		logger.Info("Initialized memory backend")
		return &Result{Store: s, Cleanup: s.Close}, nil
	}
}
