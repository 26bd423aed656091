package task

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kevlab/flasktaskr-project/domain"
	"github.com/kevlab/flasktaskr-project/pkg/validate"
	"github.com/kevlab/flasktaskr-project/repository"
)

// Input holds raw form values for a new task. Dates use domain.DateLayout.
type Input struct {
	Name       string
	DueDate    string
	Priority   string
	PostedDate string
	Status     string
}

// Page bounds an unfiltered listing. Zero values return everything.
type Page struct {
	Limit  int
	Offset int
}

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

// ListOpen returns every open task regardless of owner, soonest due first.
func (uc *UseCase) ListOpen(ctx context.Context) ([]domain.Task, error) {
	return uc.listByStatus(ctx, domain.StatusOpen)
}

// ListClosed returns every completed task, ordered like ListOpen.
func (uc *UseCase) ListClosed(ctx context.Context) ([]domain.Task, error) {
	return uc.listByStatus(ctx, domain.StatusComplete)
}

// ListAll returns tasks of any status ordered by id.
func (uc *UseCase) ListAll(ctx context.Context, page Page) ([]domain.Task, error) {
	return uc.tasks.List(ctx, repository.TaskFilter{
		Order:  repository.OrderByID,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

func (uc *UseCase) Get(ctx context.Context, id int64) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

// Create validates in and stores a task owned by user.
func (uc *UseCase) Create(ctx context.Context, user *domain.User, in Input) (*domain.Task, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}

	errs := validate.Errors{}
	errs.Field("name", in.Name, validate.Required)
	errs.Field("due_date", in.DueDate, validate.Required, validate.Date(domain.DateLayout))
	errs.Field("priority", in.Priority, validate.Required, validate.IntBetween(domain.MinPriority, domain.MaxPriority))
	errs.Field("posted_date", in.PostedDate, validate.Required, validate.Date(domain.DateLayout))
	errs.Field("status", in.Status, validate.Required,
		validate.OneOf(statusValue(domain.StatusComplete), statusValue(domain.StatusOpen)))
	if err := domain.NewValidationError(errs); err != nil {
		return nil, err
	}

	// Every value passed its rule above, so parsing cannot fail here.
	due, _ := time.Parse(domain.DateLayout, strings.TrimSpace(in.DueDate))
	posted, _ := time.Parse(domain.DateLayout, strings.TrimSpace(in.PostedDate))
	priority, _ := strconv.Atoi(strings.TrimSpace(in.Priority))
	status, _ := strconv.Atoi(strings.TrimSpace(in.Status))

	task := &domain.Task{
		Name:       strings.TrimSpace(in.Name),
		DueDate:    due,
		Priority:   priority,
		PostedDate: posted,
		Status:     domain.TaskStatus(status),
		UserID:     user.ID,
	}
	if err := uc.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	uc.logger.Info("task created", zap.Int64("task_id", task.ID), zap.Int64("user_id", user.ID))
	return task, nil
}

// Complete marks the task done. Completing a finished task again succeeds without a write.
func (uc *UseCase) Complete(ctx context.Context, user *domain.User, id int64) error {
	task, err := uc.authorize(ctx, user, id, domain.ErrUpdateForbidden)
	if err != nil {
		return err
	}
	if !task.IsOpen() {
		return nil
	}
	if err := uc.tasks.UpdateStatus(ctx, id, domain.StatusComplete); err != nil {
		return err
	}
	uc.logger.Info("task completed", zap.Int64("task_id", id), zap.Int64("user_id", user.ID))
	return nil
}

// Delete removes the task permanently.
func (uc *UseCase) Delete(ctx context.Context, user *domain.User, id int64) error {
	if _, err := uc.authorize(ctx, user, id, domain.ErrDeleteForbidden); err != nil {
		return err
	}
	if err := uc.tasks.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("task deleted", zap.Int64("task_id", id), zap.Int64("user_id", user.ID))
	return nil
}

func (uc *UseCase) authorize(ctx context.Context, user *domain.User, id int64, forbidden error) (*domain.Task, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrTaskNotFound) {
			return nil, fmt.Errorf("load task %d: %w", id, err)
		}
		return nil, err
	}
	if !domain.CanMutate(user, task) {
		uc.logger.Warn("task mutation forbidden",
			zap.Int64("task_id", id),
			zap.Int64("user_id", user.ID),
			zap.Int64("owner_id", task.UserID))
		return nil, forbidden
	}
	return task, nil
}

func (uc *UseCase) listByStatus(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error) {
	return uc.tasks.List(ctx, repository.TaskFilter{
		Status: &status,
		Order:  repository.OrderByDueDate,
	})
}

func statusValue(s domain.TaskStatus) string {
	return strconv.Itoa(int(s))
}
