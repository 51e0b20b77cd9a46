package domain

import (
	"context"
	"time"
)

// Repository defines the interface for task persistence.
type Repository interface {
	// FindActive returns all tasks that are not soft-deleted, oldest first.
	FindActive(ctx context.Context) ([]*Task, error)

	// FindByID returns ErrTaskNotFound when no row matches.
	FindByID(ctx context.Context, id int64) (*Task, error)

	// Save inserts a new task and assigns its id, or updates an existing one.
	Save(ctx context.Context, task *Task) error

	// SoftDelete marks the task inactive.
	SoftDelete(ctx context.Context, id int64, now time.Time) error
}
