package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

// TaskStore implements store.TaskStore with an in-memory map keyed by task
// ID. All reads and writes go through a single mutex, so concurrent updates
// to the same task serialize and never produce a torn row.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]domain.Task
}

// NewTaskStore creates an empty in-memory task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[uuid.UUID]domain.Task)}
}

var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks[task.ID] = *task
	return nil
}

// GetByID implements store.TaskStore.GetByID. A task owned by a different
// user is reported as not found.
func (s *TaskStore) GetByID(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[taskID]
	if !ok || task.OwnerID != ownerID {
		return nil, store.ErrTaskNotFound
	}
	return &task, nil
}

// List implements store.TaskStore.List.
func (s *TaskStore) List(
	ctx context.Context,
	ownerID uuid.UUID,
	opts store.ListOptions,
) ([]*domain.Task, error) {
	opts = opts.Normalize()

	s.mu.RLock()
	snapshot := make([]domain.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if task.OwnerID != ownerID {
			continue
		}
		if opts.Status != "" && task.Status != domain.TaskStatus(opts.Status) {
			continue
		}
		snapshot = append(snapshot, task)
	}
	s.mu.RUnlock()

	sort.Slice(snapshot, func(i, j int) bool {
		return taskLess(&snapshot[i], &snapshot[j], opts)
	})

	result := make([]*domain.Task, len(snapshot))
	for i := range snapshot {
		result[i] = &snapshot[i]
	}
	return result, nil
}

// taskLess orders tasks by the chosen column, with creation time and then ID
// as ascending tie-breakers regardless of the primary direction. This mirrors
// the SQL backends' ORDER BY <col> <dir>, created_on ASC, id ASC.
func taskLess(a, b *domain.Task, opts store.ListOptions) bool {
	var cmp int
	switch opts.SortBy {
	case store.SortByCreatedOn:
		cmp = a.CreatedOn.Compare(b.CreatedOn)
	case store.SortByLastModified:
		cmp = a.LastModified.Compare(b.LastModified)
	default:
		switch {
		case a.Priority < b.Priority:
			cmp = -1
		case a.Priority > b.Priority:
			cmp = 1
		}
	}

	if opts.Order == store.OrderDesc {
		cmp = -cmp
	}
	if cmp != 0 {
		return cmp < 0
	}

	if c := a.CreatedOn.Compare(b.CreatedOn); c != 0 {
		return c < 0
	}
	return strings.Compare(a.ID.String(), b.ID.String()) < 0
}

// Update implements store.TaskStore.Update.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tasks[task.ID]
	if !ok || existing.OwnerID != task.OwnerID {
		return store.ErrTaskNotFound
	}

	updated := existing
	updated.Name = task.Name
	updated.Description = task.Description
	updated.Priority = task.Priority
	updated.Status = task.Status
	updated.LastModified = time.Now().UTC()
	s.tasks[task.ID] = updated

	*task = updated
	return nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[taskID]
	if !ok || task.OwnerID != ownerID {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, taskID)
	return nil
}
