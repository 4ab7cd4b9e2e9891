package tasks

import (
	"context"
	"errors"
)

// ErrNotFound is returned by lookups that match no task.
var ErrNotFound = errors.New("tasks: not found")

// Store is the task store contract.
type Store interface {
	Create(ctx context.Context, task *Task) error
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Task, error)
	// ListPage returns one page of the owner's tasks, newest first, along
	// with the owner's total task count.
	ListPage(ctx context.Context, ownerID uint, page, limit int) ([]Task, int64, error)
}
