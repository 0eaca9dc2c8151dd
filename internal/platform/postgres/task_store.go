package postgres

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

// TaskStore implements store.TaskStore on PostgreSQL. Every statement
// filters on owner_id, so a foreign task and a missing task produce the
// same zero-row outcome.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a PostgreSQL-backed task store.
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

// sortColumns maps normalized sort options to SQL column names. Only
// normalized values reach the query, so the interpolation below stays
// within this whitelist.
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.OwnerID,
		task.Name,
		nullableString(task.Description),
		task.Priority,
		task.Status,
		task.CreatedOn,
		task.LastModified,
	)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("owner_id", task.OwnerID.String()))
		return fmt.Errorf("failed to create task: %w", MapError(err))
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
		WHERE id = $1 AND owner_id = $2
	`
	row := s.db.QueryRowContext(ctx, query, taskID, ownerID)

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
		WHERE owner_id = $1
		  AND ($2 = '' OR status = $2)
		ORDER BY %s %s, created_on ASC, id ASC
	`, sortColumns[opts.SortBy], direction)

	rows, err := s.db.QueryContext(ctx, query, ownerID, opts.Status)
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
		SET name = $1, description = $2, priority = $3, status = $4, last_modified = $5
		WHERE id = $6 AND owner_id = $7
	`
	result, err := s.db.ExecContext(ctx, query,
		task.Name,
		nullableString(task.Description),
		task.Priority,
		task.Status,
		now,
		task.ID,
		task.OwnerID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("failed to update task: %w", MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	task.LastModified = now
	return nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`
	result, err := s.db.ExecContext(ctx, query, taskID, ownerID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return fmt.Errorf("failed to delete task: %w", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// scanTask reads one task row. It works for both *sql.Row and *sql.Rows via
// their shared Scan signature.
func scanTask(scan func(dest ...any) error) (*domain.Task, error) {
	var task domain.Task
	var description sql.NullString

	err := scan(
		&task.ID,
		&task.OwnerID,
		&task.Name,
		&description,
		&task.Priority,
		&task.Status,
		&task.CreatedOn,
		&task.LastModified,
	)
	if err != nil {
		return nil, err
	}

	task.Description = description.String
	return &task, nil
}

// nullableString stores an empty description as NULL, matching the nullable
// column in the schema.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
