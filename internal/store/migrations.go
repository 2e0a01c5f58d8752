package store

import (
	"context"
	"database/sql"
)

// Migrate runs all database migrations.
func Migrate(ctx context.Context, db *sql.DB) error {
	migrations := []string{
		// Run history table: one row per terminated TDP session.
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			reason TEXT NOT NULL,
			diagnoses_json TEXT NOT NULL,
			iterations INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}

	for _, migration := range migrations {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			return err
		}
	}
	return nil
}
