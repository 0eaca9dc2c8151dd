package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

// TaskInput carries the caller-supplied fields for creating or updating a
// task. Updates rewrite the full mutable field set; there are no partial
// updates.
type TaskInput struct {
	Name        string
	Description string
	Priority    int
	Status      domain.TaskStatus
}

// TaskService provides owner-scoped task operations. Every method takes the
// authenticated user's ID; tasks owned by other users are reported as not
// found, never as forbidden.
type TaskService interface {
	// CreateTask creates a task for the owner. Returns a domain validation
	// error for malformed input.
	CreateTask(ctx context.Context, ownerID uuid.UUID, input TaskInput) (*domain.Task, error)

	// GetTask retrieves one of the owner's tasks.
	// Returns ErrTaskNotFound if the owner has no such task.
	GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)

	// ListTasks returns the owner's tasks sorted and filtered per opts.
	ListTasks(ctx context.Context, ownerID uuid.UUID, opts store.ListOptions) ([]*domain.Task, error)

	// UpdateTask rewrites the mutable fields of one of the owner's tasks
	// and returns the stored result. Returns ErrTaskNotFound if the owner
	// has no such task, or a domain validation error for malformed input.
	UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, input TaskInput) (*domain.Task, error)

	// DeleteTask removes one of the owner's tasks.
	// Returns ErrTaskNotFound if the owner has no such task.
	DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error
}

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) *TaskServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_service")),
	}
}

// CreateTask creates a task for the owner.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, ownerID uuid.UUID, input TaskInput) (*domain.Task, error) {
	task, err := domain.NewTask(ownerID, input.Name, input.Description, input.Priority, input.Status)
	if err != nil {
		s.logger.Debug("task creation rejected by validation",
			slog.String("owner_id", ownerID.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		s.logger.Error("failed to save task",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("owner_id", ownerID.String()))

	return task, nil
}

// GetTask retrieves one of the owner's tasks.
func (s *TaskServiceImpl) GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, ownerID, taskID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("failed to retrieve task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, fmt.Errorf("failed to retrieve task: %w", err)
	}
	return task, nil
}

// ListTasks returns the owner's tasks sorted and filtered per opts.
func (s *TaskServiceImpl) ListTasks(ctx context.Context, ownerID uuid.UUID, opts store.ListOptions) ([]*domain.Task, error) {
	tasks, err := s.taskStore.List(ctx, ownerID, opts)
	if err != nil {
		s.logger.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask rewrites the mutable fields of one of the owner's tasks.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, input TaskInput) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, ownerID, taskID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("failed to retrieve task for update",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	task.Name = strings.TrimSpace(input.Name)
	task.Description = input.Description
	task.Priority = input.Priority
	task.Status = input.Status

	if err := task.Validate(); err != nil {
		s.logger.Debug("task update rejected by validation",
			slog.String("task_id", taskID.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			// Deleted between the read and the write.
			return nil, ErrTaskNotFound
		}
		s.logger.Error("failed to save task update",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("task updated",
		slog.String("task_id", task.ID.String()),
		slog.String("owner_id", ownerID.String()))

	return task, nil
}

// DeleteTask removes one of the owner's tasks.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error {
	if err := s.taskStore.Delete(ctx, ownerID, taskID); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		s.logger.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("task deleted",
		slog.String("task_id", taskID.String()),
		slog.String("owner_id", ownerID.String()))

	return nil
}
