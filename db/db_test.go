package db_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/dasdy/keyview/db"
	"github.com/dasdy/keyview/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func steppingClock(start time.Time, step time.Duration) func() time.Time {
	cur := start.Add(-step)

	return func() time.Time {
		cur = cur.Add(step)

		return cur
	}
}

func newTestStorage(t *testing.T) *db.SQLiteStorage {
	t.Helper()

	conn, err := sql.Open("sqlite3", db.MemoryPath)
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)

	storage, err := db.NewStorageFromConnection(conn, steppingClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), time.Second))
	require.NoError(t, err)

	t.Cleanup(storage.Close)

	return storage
}

func TestMemoryStorage(t *testing.T) {
	t.Run("should insert and gather correctly", func(t *testing.T) {
		storage, err := db.NewMemoryStorage()
		require.NoError(t, err)

		defer storage.Close()

		items, err := storage.GatherAll()
		require.NoError(t, err)
		assert.Empty(t, items)

		tr := model.Transition{Label: "A"}
		for range 10 {
			tr.Pressed = !tr.Pressed
			require.NoError(t, storage.Store(tr))
		}

		for _, label := range []string{"CTRL", "B", "CTRL"} {
			require.NoError(t, storage.Store(model.Transition{Label: label, Pressed: true}))
			require.NoError(t, storage.Store(model.Transition{Label: label}))
		}

		items, err = storage.GatherAll()
		require.NoError(t, err)

		assert.Equal(t, []model.LabelCount{
			{Label: "A", Count: 5},
			{Label: "CTRL", Count: 2},
			{Label: "B", Count: 1},
		}, items)
	})
}

func TestRecent(t *testing.T) {
	storage := newTestStorage(t)

	require.NoError(t, storage.Store(model.Transition{Label: "A", Pressed: true}))
	require.NoError(t, storage.Store(model.Transition{Label: "A"}))
	require.NoError(t, storage.Store(model.Transition{Label: "WHUP", Pressed: true}))

	items, err := storage.Recent(2)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "WHUP", items[0].Label)
	assert.True(t, items[0].Pressed)
	assert.Equal(t, "A", items[1].Label)
	assert.False(t, items[1].Pressed)
	assert.True(t, items[0].Timestamp.After(items[1].Timestamp))
}

func TestRecentEmpty(t *testing.T) {
	storage := newTestStorage(t)

	items, err := storage.Recent(10)

	require.NoError(t, err)
	assert.Empty(t, items)
}
