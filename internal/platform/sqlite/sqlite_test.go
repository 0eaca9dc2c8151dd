package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasktrack-api/internal/platform/sqlite"
	"github.com/phrazzld/tasktrack-api/internal/store"
	"github.com/phrazzld/tasktrack-api/internal/store/storetest"
)

func TestSQLiteStoresContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) (store.UserStore, store.TaskStore) {
		// A fresh database file per test keeps the suite cases independent.
		path := filepath.Join(t.TempDir(), "tasks.db")
		db, err := sqlite.Open(context.Background(), path)
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		return sqlite.NewUserStore(db, nil), sqlite.NewTaskStore(db, nil)
	})
}
