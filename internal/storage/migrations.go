package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/tallyfin/tally/internal/model"
)

// ExpectedSchemaVersion is the latest schema version the application
// expects. Failing to reach it is a fatal error.
const ExpectedSchemaVersion = 4

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS transactions (
					id TEXT PRIMARY KEY,
					hash TEXT NOT NULL,
					type TEXT NOT NULL,
					description TEXT NOT NULL,
					amount_cents INTEGER NOT NULL,
					category_id TEXT NOT NULL,
					date DATETIME NOT NULL,
					notes TEXT,
					created_at DATETIME NOT NULL,
					updated_at DATETIME NOT NULL
				)`,
				`CREATE INDEX idx_transactions_date ON transactions(date)`,
				`CREATE INDEX idx_transactions_category ON transactions(category_id)`,
				`CREATE INDEX idx_transactions_hash ON transactions(hash)`,

				`CREATE TABLE IF NOT EXISTS budgets (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					amount_cents INTEGER NOT NULL,
					category_id TEXT NOT NULL DEFAULT 'all',
					start_date DATETIME NOT NULL,
					end_date DATETIME NOT NULL,
					description TEXT,
					is_active INTEGER NOT NULL DEFAULT 1,
					created_at DATETIME NOT NULL,
					updated_at DATETIME NOT NULL
				)`,
				`CREATE INDEX idx_budgets_dates ON budgets(start_date, end_date)`,

				`CREATE TABLE IF NOT EXISTS goals (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					target_cents INTEGER NOT NULL,
					current_cents INTEGER NOT NULL DEFAULT 0,
					deadline DATETIME,
					description TEXT,
					icon TEXT,
					is_active INTEGER NOT NULL DEFAULT 1,
					created_at DATETIME NOT NULL,
					updated_at DATETIME NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS categories (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					icon TEXT,
					type TEXT NOT NULL,
					sort_order INTEGER NOT NULL DEFAULT 0,
					is_active INTEGER NOT NULL DEFAULT 1
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Seed default category registry",
		Up: func(tx *sql.Tx) error {
			stmt, err := tx.Prepare(`
				INSERT OR IGNORE INTO categories (id, name, icon, type, sort_order, is_active)
				VALUES (?, ?, ?, ?, ?, ?)`)
			if err != nil {
				return fmt.Errorf("failed to prepare statement: %w", err)
			}
			defer func() { _ = stmt.Close() }()

			for _, cat := range model.DefaultCategories() {
				if _, err := stmt.Exec(cat.ID, cat.Name, cat.Icon, string(cat.Type), cat.SortOrder, cat.IsActive); err != nil {
					return fmt.Errorf("failed to seed category %q: %w", cat.ID, err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Add type+date index for period queries",
		Up: func(tx *sql.Tx) error {
			if _, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_transactions_type_date ON transactions(type, date)`); err != nil {
				return fmt.Errorf("failed to create index: %w", err)
			}
			return nil
		},
	},
	{
		Version:     4,
		Description: "Drop unique constraint on transaction hash",
		Up: func(tx *sql.Tx) error {
			// Distinct transactions may legitimately share a hash, for
			// example two identical coffee purchases on the same day.
			// SQLite cannot drop a constraint in place, so rebuild the
			// table. Databases created at version 4 or later never had
			// the constraint.
			queries := []string{
				`CREATE TABLE transactions_rebuilt (
					id TEXT PRIMARY KEY,
					hash TEXT NOT NULL,
					type TEXT NOT NULL,
					description TEXT NOT NULL,
					amount_cents INTEGER NOT NULL,
					category_id TEXT NOT NULL,
					date DATETIME NOT NULL,
					notes TEXT,
					created_at DATETIME NOT NULL,
					updated_at DATETIME NOT NULL
				)`,
				`INSERT INTO transactions_rebuilt SELECT id, hash, type, description, amount_cents, category_id, date, notes, created_at, updated_at FROM transactions`,
				`DROP TABLE transactions`,
				`ALTER TABLE transactions_rebuilt RENAME TO transactions`,
				`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date)`,
				`CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category_id)`,
				`CREATE INDEX IF NOT EXISTS idx_transactions_hash ON transactions(hash)`,
				`CREATE INDEX IF NOT EXISTS idx_transactions_type_date ON transactions(type, date)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies any pending schema migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration transaction: %w", err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Description, err)
		}

		// PRAGMA cannot take a bound parameter.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to set schema version %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		slog.Info("applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion); err != nil {
		return fmt.Errorf("failed to verify schema version: %w", err)
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("schema version %d does not match expected %d", finalVersion, ExpectedSchemaVersion)
	}
	return nil
}

// SchemaVersion reports the database's current schema version.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}
