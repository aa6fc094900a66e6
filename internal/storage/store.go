// Package storage provides abstractions for persisting the app state.
package storage

import (
	"context"

	"github.com/splitsnap/splitsnap/internal/models"
)

// Snapshots persists the serialized AppState between sessions. Persistence is
// a best-effort side channel: callers swallow errors and keep operating in
// memory, so implementations should never be load-bearing for correctness.
// This abstraction allows swapping backends (SQLite, flat file, etc.) without
// touching the state store.
type Snapshots interface {
	// Save overwrites the stored snapshot with the given state.
	Save(ctx context.Context, state models.AppState) error

	// Load returns the stored snapshot, or (nil, nil) when there is none.
	// A corrupted snapshot is reported as absent, not as an error.
	Load(ctx context.Context) (*models.AppState, error)

	// Close releases any resources held by the store.
	Close() error
}
