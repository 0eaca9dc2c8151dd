package store

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/tasktrack-api/internal/domain"
)

// Sort columns accepted by TaskStore.List.
const (
	SortByPriority     = "priority"
	SortByCreatedOn    = "created_on"
	SortByLastModified = "last_modified"
)

// Sort directions accepted by TaskStore.List.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ListOptions controls sorting and filtering for TaskStore.List. The zero
// value is valid and normalizes to the defaults (priority, descending, no
// status filter).
type ListOptions struct {
	// SortBy is the sort column. Unrecognized values fall back to
	// SortByPriority rather than erroring.
	SortBy string

	// Order is the sort direction. Unrecognized values fall back to
	// OrderDesc.
	Order string

	// Status filters tasks by completion state. Values that are not a
	// valid domain.TaskStatus disable filtering.
	Status string
}

// Normalize applies the documented fallbacks and returns options that every
// backend can consume verbatim: SortBy is one of the three allowed columns,
// Order is asc or desc, and Status is either a valid status or empty.
func (o ListOptions) Normalize() ListOptions {
	switch o.SortBy {
	case SortByPriority, SortByCreatedOn, SortByLastModified:
	default:
		o.SortBy = SortByPriority
	}

	switch strings.ToLower(o.Order) {
	case OrderAsc:
		o.Order = OrderAsc
	default:
		o.Order = OrderDesc
	}

	if !domain.TaskStatus(o.Status).IsValid() {
		o.Status = ""
	}

	return o
}

// TaskStore defines the interface for task persistence. Every operation is
// scoped by the owning user's ID: a task belonging to a different owner is
// indistinguishable from a nonexistent one.
type TaskStore interface {
	// Create saves a new task. The task is expected to be fully validated
	// (see domain.NewTask); both timestamps are persisted as given.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves the task with the given ID owned by ownerID.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	GetByID(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)

	// List returns a snapshot of the owner's tasks ordered per opts.
	// Options are normalized before use (see ListOptions.Normalize). Ties
	// on the sort column are broken by creation time and then ID, so the
	// ordering is a total order and identical across backends.
	List(ctx context.Context, ownerID uuid.UUID, opts ListOptions) ([]*domain.Task, error)

	// Update rewrites the task's mutable fields (name, description,
	// priority, status) and advances LastModified to the current UTC time,
	// mutating the passed task to match what was stored. CreatedOn and
	// OwnerID are never changed. Returns ErrTaskNotFound if the task does
	// not exist for task.OwnerID.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task with the given ID owned by ownerID.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error
}
