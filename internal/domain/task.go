package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// TaskStatus is the completion state of a task.
type TaskStatus string

// Valid task statuses.
const (
	TaskStatusDone    TaskStatus = "done"
	TaskStatusPending TaskStatus = "pending"
)

// IsValid reports whether the status is one of the known values.
func (s TaskStatus) IsValid() bool {
	return s == TaskStatusDone || s == TaskStatusPending
}

// Task field bounds. Lengths are counted in runes.
const (
	MaxTaskNameLength        = 100
	MaxTaskDescriptionLength = 500
	MinTaskPriority          = 1
)

// Task represents a single to-do item belonging to exactly one user.
// OwnerID and CreatedOn are immutable after creation; LastModified advances
// on every mutation. Higher Priority means more urgent.
type Task struct {
	ID           uuid.UUID  `json:"id"`
	OwnerID      uuid.UUID  `json:"-"` // never exposed; scoping is the store's concern
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Priority     int        `json:"priority"`
	Status       TaskStatus `json:"status"`
	CreatedOn    time.Time  `json:"created_on"`
	LastModified time.Time  `json:"last_modified"`
}

// NewTask creates a Task owned by ownerID with a fresh ID. The name is
// trimmed before validation, and both timestamps are set to the same UTC
// instant so a never-modified task has CreatedOn == LastModified.
func NewTask(
	ownerID uuid.UUID,
	name, description string,
	priority int,
	status TaskStatus,
) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Name:         strings.TrimSpace(name),
		Description:  description,
		Priority:     priority,
		Status:       status,
		CreatedOn:    now,
		LastModified: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the task's fields. The name is expected to be trimmed
// already; an empty-after-trim name is invalid.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.OwnerID == uuid.Nil {
		return ErrEmptyTaskOwner
	}
	if t.Name == "" {
		return ErrEmptyTaskName
	}
	if utf8.RuneCountInString(t.Name) > MaxTaskNameLength {
		return ErrTaskNameTooLong
	}
	if utf8.RuneCountInString(t.Description) > MaxTaskDescriptionLength {
		return ErrDescriptionTooLong
	}
	if t.Priority < MinTaskPriority {
		return ErrInvalidPriority
	}
	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}
