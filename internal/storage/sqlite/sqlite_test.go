package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitsnap/splitsnap/internal/models"
)

func newTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleState() models.AppState {
	return models.AppState{
		Version: models.StateVersion,
		Receipt: models.Receipt{
			Currency: models.CurrencyCHF,
			Venue:    "Alpenblick",
			Items: []models.LineItem{
				{ID: "i1", Name: "Roesti", Price: 18.50, AssignedTo: []string{"p1"}, SplitEvenly: true},
			},
			People:       []models.Person{{ID: "p1", Name: "Alice", Color: "#22D3EE"}},
			Tax:          1.00,
			RoundingMode: models.RoundNearest05,
			PaidBy:       "p1",
		},
		LastUpdated: 1724800000000,
	}
}

func TestLoadWithoutSnapshot(t *testing.T) {
	store := newTestStore(t)

	state, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestSaveAndLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	original := sampleState()
	require.NoError(t, store.Save(ctx, original))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, original, *loaded)
}

func TestSaveOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := sampleState()
	require.NoError(t, store.Save(ctx, first))

	second := first
	second.Receipt = first.Receipt.Clone()
	second.Receipt.Venue = "Seeblick"
	second.LastUpdated = first.LastUpdated + 1
	require.NoError(t, store.Save(ctx, second))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Seeblick", loaded.Receipt.Venue)
}

func TestCorruptedSnapshotIsTreatedAsAbsent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO snapshots (id, payload, updated_at) VALUES (1, ?, 0)",
		"{not valid json",
	)
	require.NoError(t, err)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
