// Package session persists the CLI's active working state (which
// spectrum directory is loaded, the effective config, and the last
// known diagnosis set) between "tdp" invocations. This is CLI-level
// working state, not core persistence (spec §1 Non-goals): "tdp run"
// always re-derives Ω from the spectrum it loads, never from here.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/example/tdp-finder/pkg/id"
	"github.com/example/tdp-finder/tdp/domain"
)

// Session represents a persistent tdp CLI session.
type Session struct {
	ID             string            `json:"id"`
	SpectraDir     string            `json:"spectra_dir"`
	CandidatesPath string            `json:"candidates_path"`
	TestCommand    string            `json:"test_command"`
	TraceFile      string            `json:"trace_file"`
	Interactive    bool              `json:"interactive"`
	Config         domain.Config     `json:"config"`
	Status         string            `json:"status"` // "initialized", "running", "completed", "failed"
	Reason         string            `json:"reason,omitempty"`
	Iterations     int               `json:"iterations"`
	Entropy        float64           `json:"entropy"`
	Diagnoses      []DiagnosisRecord `json:"diagnoses,omitempty"`
	Spectrum       *domain.Snapshot  `json:"spectrum,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// DiagnosisRecord is the on-disk shape of a domain.Diagnosis: its
// components sorted to a plain string slice rather than a map, so the
// session file reads cleanly.
type DiagnosisRecord struct {
	Components  []string `json:"components"`
	Probability float64  `json:"probability"`
}

// ToRecords converts a diagnosis set to its on-disk shape.
func ToRecords(diagnoses []domain.Diagnosis) []DiagnosisRecord {
	out := make([]DiagnosisRecord, len(diagnoses))
	for i, d := range diagnoses {
		out[i] = DiagnosisRecord{Components: d.Components.Sorted(), Probability: d.Probability}
	}
	return out
}

// FromRecords converts on-disk records back to a diagnosis set.
func FromRecords(records []DiagnosisRecord) []domain.Diagnosis {
	out := make([]domain.Diagnosis, len(records))
	for i, r := range records {
		out[i] = domain.Diagnosis{Components: domain.NewElementSet(r.Components...), Probability: r.Probability}
	}
	return out
}

const (
	sessionDir  = ".tdp"
	sessionFile = "session.json"
)

// GetSessionDir returns the session directory for the given working dir.
func GetSessionDir(workDir string) string {
	return filepath.Join(workDir, sessionDir)
}

// GetSessionPath returns the path to the session file.
func GetSessionPath(workDir string) string {
	return filepath.Join(GetSessionDir(workDir), sessionFile)
}

// Load loads the session from disk.
func Load(workDir string) (*Session, error) {
	path := GetSessionPath(workDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no active session found (use 'tdp init' to begin)")
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	return &s, nil
}

// Save saves the session to disk.
func (s *Session) Save(workDir string) error {
	s.UpdatedAt = time.Now()

	dir := GetSessionDir(workDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(GetSessionPath(workDir), data, 0644); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Delete removes the session from disk.
func Delete(workDir string) error {
	if err := os.RemoveAll(GetSessionDir(workDir)); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove session: %w", err)
		}
	}
	return nil
}

// Exists checks if a session exists.
func Exists(workDir string) bool {
	_, err := os.Stat(GetSessionPath(workDir))
	return err == nil
}

// New creates a new session.
func New(spectraDir, candidatesPath, testCommand, traceFile string, interactive bool, cfg domain.Config) *Session {
	now := time.Now()
	return &Session{
		ID:             "session-" + id.GenerateShort(),
		SpectraDir:     spectraDir,
		CandidatesPath: candidatesPath,
		TestCommand:    testCommand,
		TraceFile:      traceFile,
		Interactive:    interactive,
		Config:         cfg.WithDefaults(),
		Status:         "initialized",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
