package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kevlab/flasktaskr-project/domain"
	"github.com/kevlab/flasktaskr-project/repository"
)

const taskColumns = `id, name, due_date, priority, posted_date, status, user_id`

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	const query = `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	return scanTask(r.pool.QueryRow(ctx, query, id))
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	const (
		byDueDate = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE ($1::smallint IS NULL OR status = $1)
	ORDER BY due_date ASC, priority ASC, id ASC
	LIMIT $2 OFFSET $3
	`
		byID = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE ($1::smallint IS NULL OR status = $1)
	ORDER BY id ASC
	LIMIT $2 OFFSET $3
	`
	)

	query := byDueDate
	if filter.Order == repository.OrderByID {
		query = byID
	}

	var status interface{}
	if filter.Status != nil {
		status = int16(*filter.Status)
	}

	rows, err := r.pool.Query(ctx, query, status, nullLimit(filter.Limit), clampOffset(filter.Offset))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO tasks (name, due_date, priority, posted_date, status, user_id)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id
	`

	if err := r.pool.QueryRow(ctx, query,
		task.Name,
		task.DueDate,
		task.Priority,
		task.PostedDate,
		int16(task.Status),
		task.UserID,
	).Scan(&task.ID); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus) error {
	const query = `UPDATE tasks SET status = $2 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, int16(status))
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		task   domain.Task
		status int16
	)
	if err := row.Scan(
		&task.ID,
		&task.Name,
		&task.DueDate,
		&task.Priority,
		&task.PostedDate,
		&status,
		&task.UserID,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	task.Status = domain.TaskStatus(status)
	return &task, nil
}
