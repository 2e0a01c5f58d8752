// Package store persists CLI-level run history to sqlite: one row per
// terminated TDP session. The core (tdp/...) never imports this package;
// restarting a run always re-derives its diagnosis set from the spectrum,
// never from this table.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/tdp-finder/tdp/control"
	"github.com/example/tdp-finder/tdp/domain"
)

// Store wraps a sqlite-backed run-history table.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the sqlite database at path and
// runs its migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Run is one terminated session's stored history.
type Run struct {
	ID          string
	Reason      control.Reason
	Diagnoses   []domain.Diagnosis
	Iterations  int
	CreatedAt   time.Time
}

// diagnosisRecord is the JSON-on-disk shape of a domain.Diagnosis.
type diagnosisRecord struct {
	Components  []string `json:"components"`
	Probability float64  `json:"probability"`
}

// Record inserts a completed run into the history table.
func (s *Store) Record(ctx context.Context, id string, report *control.Report) error {
	records := make([]diagnosisRecord, len(report.Diagnoses))
	for i, d := range report.Diagnoses {
		records[i] = diagnosisRecord{Components: d.Components.Sorted(), Probability: d.Probability}
	}
	diagnosesJSON, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("store: marshaling diagnoses: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, reason, diagnoses_json, iterations, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		id, string(report.Reason), string(diagnosesJSON), report.Iterations, time.Now().UTC())
	return err
}

// List returns the most recent runs, newest first, capped at limit.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, reason, diagnoses_json, iterations, created_at
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run           Run
			reason        string
			diagnosesJSON string
		)
		if err := rows.Scan(&run.ID, &reason, &diagnosesJSON, &run.Iterations, &run.CreatedAt); err != nil {
			return nil, err
		}
		run.Reason = control.Reason(reason)

		var records []diagnosisRecord
		if err := json.Unmarshal([]byte(diagnosesJSON), &records); err != nil {
			return nil, fmt.Errorf("store: unmarshaling diagnoses for run %s: %w", run.ID, err)
		}
		run.Diagnoses = make([]domain.Diagnosis, len(records))
		for i, r := range records {
			run.Diagnoses[i] = domain.Diagnosis{
				Components:  domain.NewElementSet(r.Components...),
				Probability: r.Probability,
			}
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
