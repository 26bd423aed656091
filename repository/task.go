package repository

import (
	"context"

	"github.com/kevlab/flasktaskr-project/domain"
)

// TaskOrder selects the sort applied by TaskRepository.List.
type TaskOrder int

const (
	// OrderByDueDate sorts by due date, then priority, then id.
	OrderByDueDate TaskOrder = iota
	// OrderByID sorts by id only.
	OrderByID
)

type TaskFilter struct {
	// Status restricts the listing when non-nil.
	Status *domain.TaskStatus
	Order  TaskOrder
	// Limit <= 0 returns every matching row.
	Limit  int
	Offset int
}

type TaskRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) error
	UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus) error
	Delete(ctx context.Context, id int64) error
}
