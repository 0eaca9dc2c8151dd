// Package storetest provides a behavioral contract suite that every pair of
// store implementations (users + tasks) must pass. Running the same suite
// against the PostgreSQL, SQLite and in-memory backends guarantees they are
// interchangeable.
package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

// Factory returns a fresh, empty store pair for a single test. Implementations
// should register cleanup on t.
type Factory func(t *testing.T) (store.UserStore, store.TaskStore)

// Run executes the full contract suite against stores built by the factory.
func Run(t *testing.T, newStores Factory) {
	t.Run("UserStore", func(t *testing.T) {
		runUserSuite(t, newStores)
	})
	t.Run("TaskStore", func(t *testing.T) {
		runTaskSuite(t, newStores)
	})
}

func mustCreateUser(t *testing.T, users store.UserStore, username string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(username, "secret1")
	require.NoError(t, err)
	user.HashedPassword = "$2a$10$" + username // opaque to the store
	user.Password = ""
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func mustCreateTask(
	t *testing.T,
	tasks store.TaskStore,
	ownerID uuid.UUID,
	name string,
	priority int,
	status domain.TaskStatus,
) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(ownerID, name, "", priority, status)
	require.NoError(t, err)
	require.NoError(t, tasks.Create(context.Background(), task))
	return task
}

func runUserSuite(t *testing.T, newStores Factory) {
	ctx := context.Background()

	t.Run("create then get by username", func(t *testing.T) {
		users, _ := newStores(t)
		created := mustCreateUser(t, users, "alice")

		got, err := users.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, created.HashedPassword, got.HashedPassword)
	})

	t.Run("get by id", func(t *testing.T) {
		users, _ := newStores(t)
		created := mustCreateUser(t, users, "alice")

		got, err := users.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Username, got.Username)
	})

	t.Run("unknown username is not found", func(t *testing.T) {
		users, _ := newStores(t)
		_, err := users.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		users, _ := newStores(t)
		_, err := users.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		users, _ := newStores(t)
		mustCreateUser(t, users, "alice")

		dup, err := domain.NewUser("alice", "another1")
		require.NoError(t, err)
		dup.HashedPassword = "$2a$10$other"
		dup.Password = ""

		err = users.Create(ctx, dup)
		assert.ErrorIs(t, err, store.ErrUsernameExists)
	})

	t.Run("concurrent registrations of one username admit exactly one", func(t *testing.T) {
		users, _ := newStores(t)

		const attempts = 8
		errs := make([]error, attempts)
		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				user, err := domain.NewUser("racer", "secret1")
				if err != nil {
					errs[i] = err
					return
				}
				user.HashedPassword = "$2a$10$racer"
				user.Password = ""
				errs[i] = users.Create(ctx, user)
			}(i)
		}
		wg.Wait()

		var successes, duplicates int
		for _, err := range errs {
			switch {
			case err == nil:
				successes++
			case store.IsDuplicateError(err):
				duplicates++
			default:
				t.Fatalf("unexpected error from concurrent create: %v", err)
			}
		}
		assert.Equal(t, 1, successes)
		assert.Equal(t, attempts-1, duplicates)

		// The winner's row is intact and unique.
		_, err := users.GetByUsername(ctx, "racer")
		require.NoError(t, err)
	})
}

func runTaskSuite(t *testing.T, newStores Factory) {
	ctx := context.Background()

	t.Run("create then get round-trips", func(t *testing.T) {
		users, tasks := newStores(t)
		owner := mustCreateUser(t, users, "alice")

		created, err := domain.NewTask(owner.ID, "  Buy milk ", "2 litres", 3, domain.TaskStatusPending)
		require.NoError(t, err)
		require.NoError(t, tasks.Create(ctx, created))

		got, err := tasks.GetByID(ctx, owner.ID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, owner.ID, got.OwnerID)
		assert.Equal(t, "Buy milk", got.Name)
		assert.Equal(t, "2 litres", got.Description)
		assert.Equal(t, 3, got.Priority)
		assert.Equal(t, domain.TaskStatusPending, got.Status)
		assert.True(t, got.CreatedOn.Equal(got.LastModified),
			"a never-modified task has created_on == last_modified")
		assert.WithinDuration(t, created.CreatedOn, got.CreatedOn, time.Second)
	})

	t.Run("tasks of other owners are invisible", func(t *testing.T) {
		users, tasks := newStores(t)
		alice := mustCreateUser(t, users, "alice")
		bob := mustCreateUser(t, users, "bob")
		task := mustCreateTask(t, tasks, alice.ID, "secret plans", 1, domain.TaskStatusPending)

		_, err := tasks.GetByID(ctx, bob.ID, task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		stolen := *task
		stolen.OwnerID = bob.ID
		stolen.Name = "defaced"
		assert.ErrorIs(t, tasks.Update(ctx, &stolen), store.ErrTaskNotFound)

		assert.ErrorIs(t, tasks.Delete(ctx, bob.ID, task.ID), store.ErrTaskNotFound)

		// Alice's task is untouched by any of the above.
		got, err := tasks.GetByID(ctx, alice.ID, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "secret plans", got.Name)
	})

	t.Run("list sorts by priority descending by default", func(t *testing.T) {
		users, tasks := newStores(t)
		owner := mustCreateUser(t, users, "alice")
		mustCreateTask(t, tasks, owner.ID, "low", 1, domain.TaskStatusPending)
		mustCreateTask(t, tasks, owner.ID, "high", 5, domain.TaskStatusPending)
		mustCreateTask(t, tasks, owner.ID, "mid", 3, domain.TaskStatusPending)

		got, err := tasks.List(ctx, owner.ID, store.ListOptions{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []int{5, 3, 1}, priorities(got))
	})

	t.Run("list ascending order", func(t *testing.T) {
		users, tasks := newStores(t)
		owner := mustCreateUser(t, users, "alice")
		mustCreateTask(t, tasks, owner.ID, "low", 1, domain.TaskStatusPending)
		mustCreateTask(t, tasks, owner.ID, "high", 5, domain.TaskStatusPending)
		mustCreateTask(t, tasks, owner.ID, "mid", 3, domain.TaskStatusPending)

		got, err := tasks.List(ctx, owner.ID, store.ListOptions{Order: store.OrderAsc})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3, 5}, priorities(got))
	})

	t.Run("unknown sort column behaves like priority", func(t *testing.T) {
		users, tasks := newStores(t)
		owner := mustCreateUser(t, users, "alice")
		mustCreateTask(t, tasks, owner.ID, "low", 1, domain.TaskStatusPending)
		mustCreateTask(t, tasks, owner.ID, "high", 5, domain.TaskStatusPending)
		mustCreateTask(t, tasks, owner.ID, "mid", 3, domain.TaskStatusPending)

		byName, err := tasks.List(ctx, owner.ID, store.ListOptions{SortBy: "name"})
		require.NoError(t, err)
		byPriority, err := tasks.List(ctx, owner.ID, store.ListOptions{SortBy: store.SortByPriority})
		require.NoError(t, err)
		assert.Equal(t, ids(byPriority), ids(byName))
	})

	t.Run("list sorts by creation time", func(t *testing.T) {
		users, tasks := newStores(t)
		owner := mustCreateUser(t, users, "alice")
		base := time.Now().UTC().Truncate(time.Second)

		// Distinct, explicit timestamps keep the test deterministic.
		var want []uuid.UUID
		for i, name := range []string{"first", "second", "third"} {
			task, err := domain.NewTask(owner.ID, name, "", 1, domain.TaskStatusPending)
			require.NoError(t, err)
			task.CreatedOn = base.Add(time.Duration(i) * time.Minute)
			task.LastModified = task.CreatedOn
			require.NoError(t, tasks.Create(ctx, task))
			want = append(want, task.ID)
		}

		got, err := tasks.List(ctx, owner.ID, store.ListOptions{
			SortBy: store.SortByCreatedOn,
			Order:  store.OrderAsc,
		})
		require.NoError(t, err)
		assert.Equal(t, want, ids(got))
	})

	t.Run("priority ties break by creation time", func(t *testing.T) {
		users, tasks := newStores(t)
		owner := mustCreateUser(t, users, "alice")
		base := time.Now().UTC().Truncate(time.Second)

		var want []uuid.UUID
		for i, name := range []string{"older", "newer"} {
			task, err := domain.NewTask(owner.ID, name, "", 2, domain.TaskStatusPending)
			require.NoError(t, err)
			task.CreatedOn = base.Add(time.Duration(i) * time.Minute)
			task.LastModified = task.CreatedOn
			require.NoError(t, tasks.Create(ctx, task))
			want = append(want, task.ID)
		}

		// Same priority everywhere: the tie-break decides the whole order,
		// and it stays ascending even when the primary order is descending.
		got, err := tasks.List(ctx, owner.ID, store.ListOptions{Order: store.OrderDesc})
		require.NoError(t, err)
		assert.Equal(t, want, ids(got))
	})

	t.Run("status filter", func(t *testing.T) {
		users, tasks := newStores(t)
		owner := mustCreateUser(t, users, "alice")
		mustCreateTask(t, tasks, owner.ID, "done one", 1, domain.TaskStatusDone)
		mustCreateTask(t, tasks, owner.ID, "pending one", 2, domain.TaskStatusPending)

		done, err := tasks.List(ctx, owner.ID, store.ListOptions{Status: "done"})
		require.NoError(t, err)
		require.Len(t, done, 1)
		assert.Equal(t, "done one", done[0].Name)

		// An unrecognized filter value is ignored, not an error.
		all, err := tasks.List(ctx, owner.ID, store.ListOptions{Status: "archived"})
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("list returns only the owner's tasks", func(t *testing.T) {
		users, tasks := newStores(t)
		alice := mustCreateUser(t, users, "alice")
		bob := mustCreateUser(t, users, "bob")
		mustCreateTask(t, tasks, alice.ID, "hers", 1, domain.TaskStatusPending)
		mustCreateTask(t, tasks, bob.ID, "his", 1, domain.TaskStatusPending)

		got, err := tasks.List(ctx, alice.ID, store.ListOptions{})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "hers", got[0].Name)
	})

	t.Run("list for empty owner is empty", func(t *testing.T) {
		users, tasks := newStores(t)
		owner := mustCreateUser(t, users, "alice")

		got, err := tasks.List(ctx, owner.ID, store.ListOptions{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("update rewrites fields and advances last_modified", func(t *testing.T) {
		users, tasks := newStores(t)
		owner := mustCreateUser(t, users, "alice")
		task := mustCreateTask(t, tasks, owner.ID, "Buy milk", 3, domain.TaskStatusPending)
		createdOn := task.CreatedOn

		task.Name = "Buy oat milk"
		task.Description = "the barista kind"
		task.Priority = 4
		task.Status = domain.TaskStatusDone
		require.NoError(t, tasks.Update(ctx, task))

		got, err := tasks.GetByID(ctx, owner.ID, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "Buy oat milk", got.Name)
		assert.Equal(t, "the barista kind", got.Description)
		assert.Equal(t, 4, got.Priority)
		assert.Equal(t, domain.TaskStatusDone, got.Status)
		assert.WithinDuration(t, createdOn, got.CreatedOn, time.Second,
			"created_on is immutable")
		assert.False(t, got.LastModified.Before(got.CreatedOn))
		assert.Equal(t, owner.ID, got.OwnerID)
	})

	t.Run("update of unknown task is not found", func(t *testing.T) {
		users, tasks := newStores(t)
		owner := mustCreateUser(t, users, "alice")

		ghost, err := domain.NewTask(owner.ID, "ghost", "", 1, domain.TaskStatusPending)
		require.NoError(t, err)
		assert.ErrorIs(t, tasks.Update(ctx, ghost), store.ErrTaskNotFound)
	})

	t.Run("delete removes the task", func(t *testing.T) {
		users, tasks := newStores(t)
		owner := mustCreateUser(t, users, "alice")
		task := mustCreateTask(t, tasks, owner.ID, "Buy milk", 3, domain.TaskStatusPending)

		require.NoError(t, tasks.Delete(ctx, owner.ID, task.ID))

		_, err := tasks.GetByID(ctx, owner.ID, task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		assert.ErrorIs(t, tasks.Delete(ctx, owner.ID, task.ID), store.ErrTaskNotFound)
	})
}

func priorities(tasks []*domain.Task) []int {
	out := make([]int, len(tasks))
	for i, task := range tasks {
		out[i] = task.Priority
	}
	return out
}

func ids(tasks []*domain.Task) []uuid.UUID {
	out := make([]uuid.UUID, len(tasks))
	for i, task := range tasks {
		out[i] = task.ID
	}
	return out
}
