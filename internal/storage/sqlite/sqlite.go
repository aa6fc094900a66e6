// Package sqlite provides a SQLite-backed implementation of storage.Snapshots.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/splitsnap/splitsnap/internal/models"
	"github.com/splitsnap/splitsnap/internal/storage"
)

// Ensure SnapshotStore implements storage.Snapshots
var _ storage.Snapshots = (*SnapshotStore)(nil)

// SnapshotStore implements storage.Snapshots using a single-row SQLite table.
type SnapshotStore struct {
	db *sql.DB
}

// New creates a SnapshotStore at the given database path. It creates the
// parent directories and runs migrations automatically.
func New(dbPath string) (*SnapshotStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SnapshotStore{db: db}, nil
}

// Close closes the database connection.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// Save overwrites the stored snapshot with the given state.
func (s *SnapshotStore) Save(ctx context.Context, state models.AppState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO snapshots (id, payload, updated_at) VALUES (1, ?, ?)",
		string(payload), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot. An empty table or an unreadable payload
// both mean "no prior state".
func (s *SnapshotStore) Load(ctx context.Context) (*models.AppState, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM snapshots WHERE id = 1",
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var state models.AppState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		slog.Warn("Discarding corrupted state snapshot", "error", err)
		return nil, nil
	}
	return &state, nil
}
