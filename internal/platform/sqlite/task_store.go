package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/platform/logger"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

// TaskStore implements store.TaskStore on SQLite with the same owner-scoped
// statements as the PostgreSQL backend.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a SQLite-backed task store.
func NewTaskStore(db store.DBTX, log *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &TaskStore{
		db:     db,
		logger: log.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

var sortColumns = map[string]string{
	store.SortByPriority:     "priority",
	store.SortByCreatedOn:    "created_on",
	store.SortByLastModified: "last_modified",
}

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO tasks (id, owner_id, name, description, priority, status, created_on, last_modified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		task.ID.String(),
		task.OwnerID.String(),
		task.Name,
		nullableString(task.Description),
		task.Priority,
		string(task.Status),
		task.CreatedOn,
		task.LastModified,
	)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("failed to create task: %w", err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("owner_id", task.OwnerID.String()))
	return nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *TaskStore) GetByID(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	query := `
		SELECT id, owner_id, name, description, priority, status, created_on, last_modified
		FROM tasks
		WHERE id = ? AND owner_id = ?
	`
	row := s.db.QueryRowContext(ctx, query, taskID.String(), ownerID.String())

	task, err := scanTask(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to query task: %w", err)
	}
	return task, nil
}

// List implements store.TaskStore.List.
func (s *TaskStore) List(
	ctx context.Context,
	ownerID uuid.UUID,
	opts store.ListOptions,
) ([]*domain.Task, error) {
	opts = opts.Normalize()

	direction := "DESC"
	if opts.Order == store.OrderAsc {
		direction = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT id, owner_id, name, description, priority, status, created_on, last_modified
		FROM tasks
		WHERE owner_id = ?
		  AND (? = '' OR status = ?)
		ORDER BY %s %s, created_on ASC, id ASC
	`, sortColumns[opts.SortBy], direction)

	rows, err := s.db.QueryContext(ctx, query, ownerID.String(), opts.Status, opts.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

// Update implements store.TaskStore.Update.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := time.Now().UTC()

	query := `
		UPDATE tasks
		SET name = ?, description = ?, priority = ?, status = ?, last_modified = ?
		WHERE id = ? AND owner_id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		task.Name,
		nullableString(task.Description),
		task.Priority,
		string(task.Status),
		now,
		task.ID.String(),
		task.OwnerID.String(),
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("failed to update task: %w", err)
	}
	if err := checkRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	task.LastModified = now
	return nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM tasks WHERE id = ? AND owner_id = ?`
	result, err := s.db.ExecContext(ctx, query, taskID.String(), ownerID.String())
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return checkRowsAffected(result, store.ErrTaskNotFound)
}

func scanTask(scan func(dest ...any) error) (*domain.Task, error) {
	var task domain.Task
	var id, ownerID, status string
	var description sql.NullString

	err := scan(
		&id,
		&ownerID,
		&task.Name,
		&description,
		&task.Priority,
		&status,
		&task.CreatedOn,
		&task.LastModified,
	)
	if err != nil {
		return nil, err
	}

	task.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid task ID in database: %w", err)
	}
	task.OwnerID, err = uuid.Parse(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner ID in database: %w", err)
	}
	task.Description = description.String
	task.Status = domain.TaskStatus(status)
	return &task, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
