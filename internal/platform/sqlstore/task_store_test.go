package sqlstore

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/api/internal/domain"
	"github.com/taskdeck/api/internal/store"
)

// newTestDB opens a fresh SQLite database in a temp directory and applies
// the embedded migrations. Not parallel-safe: goose dialect state is global.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(context.Background(), db, DialectSQLite))
	return db
}

func newTestStore(t *testing.T) *TaskStore {
	t.Helper()

	taskStore := NewTaskStore(newTestDB(t), nil)
	taskStore.timeFunc = func() time.Time {
		return time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	}
	return taskStore
}

func TestTaskStoreCreate(t *testing.T) {
	taskStore := newTestStore(t)
	ctx := context.Background()

	t.Run("assigns fresh ids and defaults", func(t *testing.T) {
		first, err := taskStore.Create(ctx, "first")
		require.NoError(t, err)
		second, err := taskStore.Create(ctx, "second")
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.Greater(t, second.ID, first.ID)
		assert.False(t, first.Completed)
		assert.Equal(t, "first", first.Title)
		assert.Equal(t, "2025-03-14 09:00:00", first.CreatedAt)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := taskStore.Create(ctx, "")
		assert.ErrorIs(t, err, domain.ErrEmptyTaskTitle)
	})
}

func TestTaskStoreGetByID(t *testing.T) {
	taskStore := newTestStore(t)
	ctx := context.Background()

	created, err := taskStore.Create(ctx, "buy milk")
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		got, err := taskStore.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.Title, got.Title)
		assert.Equal(t, created.Completed, got.Completed)
		assert.Equal(t, created.CreatedAt, got.CreatedAt)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := taskStore.GetByID(ctx, created.ID+1000)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestTaskStoreList(t *testing.T) {
	taskStore := newTestStore(t)
	ctx := context.Background()

	t.Run("empty store returns empty slice", func(t *testing.T) {
		tasks, err := taskStore.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("ordered by id descending", func(t *testing.T) {
		for _, title := range []string{"one", "two", "three"} {
			_, err := taskStore.Create(ctx, title)
			require.NoError(t, err)
		}

		tasks, err := taskStore.List(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, "three", tasks[0].Title)
		assert.Equal(t, "two", tasks[1].Title)
		assert.Equal(t, "one", tasks[2].Title)
		assert.Greater(t, tasks[0].ID, tasks[1].ID)
		assert.Greater(t, tasks[1].ID, tasks[2].ID)
	})
}

func TestTaskStoreUpdate(t *testing.T) {
	taskStore := newTestStore(t)
	ctx := context.Background()

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		created, err := taskStore.Create(ctx, "buy milk")
		require.NoError(t, err)

		completed := true
		updated, err := taskStore.Update(ctx, created.ID, nil, &completed)
		require.NoError(t, err)
		assert.Equal(t, "buy milk", updated.Title)
		assert.True(t, updated.Completed)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)

		title := "buy oat milk"
		updated, err = taskStore.Update(ctx, created.ID, &title, nil)
		require.NoError(t, err)
		assert.Equal(t, "buy oat milk", updated.Title)
		assert.True(t, updated.Completed, "completed must survive a title-only update")
	})

	t.Run("missing id", func(t *testing.T) {
		completed := true
		_, err := taskStore.Update(ctx, 9999, nil, &completed)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("empty merged title rejected", func(t *testing.T) {
		created, err := taskStore.Create(ctx, "valid")
		require.NoError(t, err)

		empty := "   "
		_, err = taskStore.Update(ctx, created.ID, &empty, nil)
		assert.ErrorIs(t, err, domain.ErrEmptyTaskTitle)

		// Row is untouched after the rejected update.
		got, err := taskStore.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "valid", got.Title)
	})
}

func TestTaskStoreDelete(t *testing.T) {
	taskStore := newTestStore(t)
	ctx := context.Background()

	created, err := taskStore.Create(ctx, "ephemeral")
	require.NoError(t, err)

	require.NoError(t, taskStore.Delete(ctx, created.ID))

	_, err = taskStore.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	// Second delete of the same id reports not found.
	assert.ErrorIs(t, taskStore.Delete(ctx, created.ID), store.ErrTaskNotFound)
}
