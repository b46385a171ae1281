package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abdulachik/autotweet/internal/db/migrations"
	_ "modernc.org/sqlite"
)

// Store wraps the post history database and provides access to queries.
type Store struct {
	*sql.DB
	*Queries

	Path string
}

// NewStore opens (creating if needed) the SQLite database at dbPath.
func NewStore(ctx context.Context, dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single writer; pragmas below are per connection.
	sqlDB.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON"} {
		if _, err := sqlDB.ExecContext(ctx, pragma); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	return &Store{
		DB:      sqlDB,
		Queries: New(sqlDB),
		Path:    dbPath,
	}, nil
}

// Migrate runs all pending database migrations.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	pending, err := s.pendingMigrations(ctx)
	if err != nil {
		return err
	}

	if len(pending) == 0 {
		slog.Debug("database schema up to date", "path", s.Path)
		return nil
	}

	for _, file := range pending {
		if err := s.applyMigration(ctx, file); err != nil {
			return err
		}
		slog.Info("applied migration", "file", file)
	}

	return nil
}

// pendingMigrations lists embedded migration files not yet recorded, in order.
func (s *Store) pendingMigrations(ctx context.Context) ([]string, error) {
	rows, err := s.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("scan migration: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate migrations: %w", err)
	}

	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var pending []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") || applied[name] {
			continue
		}
		pending = append(pending, name)
	}
	sort.Strings(pending)

	return pending, nil
}

// applyMigration runs the up section of file and records it, in one transaction.
func (s *Store) applyMigration(ctx context.Context, file string) error {
	content, err := fs.ReadFile(migrations.FS, file)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", file, err)
	}

	tx, err := s.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, extractUpMigration(string(content))); err != nil {
		return fmt.Errorf("execute migration %s: %w", file, err)
	}

	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", file); err != nil {
		return fmt.Errorf("record migration %s: %w", file, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", file, err)
	}
	return nil
}

// extractUpMigration returns the part of a migration file before "-- +migrate Down".
func extractUpMigration(content string) string {
	if idx := strings.Index(content, "-- +migrate Down"); idx != -1 {
		content = content[:idx]
	}
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "-- +migrate Up")
	return strings.TrimSpace(content)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.DB.Close()
}
