package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/ecomonitor/internal/energy"
	"github.com/jgoulah/ecomonitor/pkg/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "data.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestArchiveStore_Idempotent(t *testing.T) {
	db := openTestDB(t)

	store := energy.NewStore()
	store.Append("Oven", models.Reading{Timestamp: "2024-03-05 14:30:00", Usage: 2.5})
	store.Append("Fridge", models.Reading{Timestamp: "2024-03-05 14:30:00", Usage: 1})
	store.Append("Oven", models.Reading{Timestamp: "2024-03-05 14:31:00", Usage: 3})

	batch, inserted, err := db.ArchiveStore(store)
	require.NoError(t, err)
	assert.NotEmpty(t, batch)
	assert.Equal(t, 3, inserted)

	_, inserted, err = db.ArchiveStore(store)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)

	// a newly generated reading is picked up on the next run
	store.Append("Oven", models.Reading{Timestamp: "2024-03-05 14:32:00", Usage: 1.5})
	_, inserted, err = db.ArchiveStore(store)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	readings, err := db.ListReadings("Oven")
	require.NoError(t, err)
	require.Len(t, readings, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{readings[0].Seq, readings[1].Seq, readings[2].Seq})
	assert.Equal(t, models.Reading{Timestamp: "2024-03-05 14:32:00", Usage: 1.5}, readings[2].Reading)
	assert.Equal(t, batch, readings[0].BatchID)
}

func TestInsertReading(t *testing.T) {
	db := openTestDB(t)
	r := models.Reading{Timestamp: "2024-03-05 14:30:00", Usage: 4.2}

	added, err := insertReading(db.conn, "Computer", 0, r, "batch-1", "2024-03-05T14:30:00Z")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = insertReading(db.conn, "Computer", 0, r, "batch-2", "2024-03-05T14:31:00Z")
	require.NoError(t, err)
	assert.False(t, added)

	readings, err := db.ListReadings("Computer")
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, "batch-1", readings[0].BatchID)
}

func TestArchiveStore_ClosedDB(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "data.db"))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	store := energy.NewStore()
	store.Append("Oven", models.Reading{Timestamp: "2024-03-05 14:30:00", Usage: 2.5})

	_, inserted, err := db.ArchiveStore(store)
	assert.Error(t, err)
	assert.Equal(t, 0, inserted)
}

func TestTotals(t *testing.T) {
	db := openTestDB(t)

	totals, err := db.Totals()
	require.NoError(t, err)
	assert.Empty(t, totals)

	store := energy.NewStore()
	store.Append("Oven", models.Reading{Timestamp: "t1", Usage: 2})
	store.Append("Oven", models.Reading{Timestamp: "t2", Usage: 3.5})
	store.Append("Fridge", models.Reading{Timestamp: "t1", Usage: 1})
	_, _, err = db.ArchiveStore(store)
	require.NoError(t, err)

	totals, err = db.Totals()
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, "Fridge", totals[0].Appliance)
	assert.Equal(t, 1, totals[0].Readings)
	assert.Equal(t, "Oven", totals[1].Appliance)
	assert.InDelta(t, 5.5, totals[1].KWh, 1e-9)
}
