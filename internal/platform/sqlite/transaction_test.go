package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/platform/sqlite"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.db")
	db, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestUser(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(username, "secret1")
	require.NoError(t, err)
	user.HashedPassword = "$2a$10$placeholder"
	user.Password = ""
	return user
}

// The stores accept any store.DBTX, so they run unchanged inside a
// transaction opened by store.RunInTransaction.
func TestStoresRunInTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commits multi-store writes atomically", func(t *testing.T) {
		db := openTestDB(t)
		user := newTestUser(t, "alice")

		err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			users := sqlite.NewUserStore(tx, nil)
			tasks := sqlite.NewTaskStore(tx, nil)

			if err := users.Create(ctx, user); err != nil {
				return err
			}
			task, err := domain.NewTask(user.ID, "Buy milk", "", 3, domain.TaskStatusPending)
			if err != nil {
				return err
			}
			return tasks.Create(ctx, task)
		})
		require.NoError(t, err)

		users := sqlite.NewUserStore(db, nil)
		tasks := sqlite.NewTaskStore(db, nil)

		got, err := users.GetByUsername(ctx, "alice")
		require.NoError(t, err)

		list, err := tasks.List(ctx, got.ID, store.ListOptions{})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("rolls back every write on error", func(t *testing.T) {
		db := openTestDB(t)
		user := newTestUser(t, "alice")
		boom := errors.New("boom")

		err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			users := sqlite.NewUserStore(tx, nil)
			if err := users.Create(ctx, user); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		users := sqlite.NewUserStore(db, nil)
		_, err = users.GetByUsername(ctx, "alice")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("rolled back task writes stay invisible", func(t *testing.T) {
		db := openTestDB(t)
		user := newTestUser(t, "alice")

		users := sqlite.NewUserStore(db, nil)
		require.NoError(t, users.Create(ctx, user))

		err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			tasks := sqlite.NewTaskStore(tx, nil)
			task, err := domain.NewTask(user.ID, "Buy milk", "", 3, domain.TaskStatusPending)
			if err != nil {
				return err
			}
			if err := tasks.Create(ctx, task); err != nil {
				return err
			}
			return errors.New("abandon")
		})
		require.Error(t, err)

		tasks := sqlite.NewTaskStore(db, nil)
		list, err := tasks.List(ctx, user.ID, store.ListOptions{})
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("surfaces unique violations from inside the transaction", func(t *testing.T) {
		db := openTestDB(t)

		users := sqlite.NewUserStore(db, nil)
		require.NoError(t, users.Create(ctx, newTestUser(t, "alice")))

		err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			return sqlite.NewUserStore(tx, nil).Create(ctx, newTestUser(t, "alice"))
		})
		assert.ErrorIs(t, err, store.ErrUsernameExists)
	})
}
