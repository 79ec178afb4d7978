package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"doabli/internal/models"
)

var taskColumns = []string{
	"id", "title", "description", "status", "priority", "due_date", "assignee_id",
	"project_id", "created_by_id", "position", "created_at", "updated_at",
}

type TaskRepository interface {
	List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, id int64, u models.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, id int64) error

	// UpdatePosition writes position and status in one statement without
	// touching the rest of the column. Two callers may end up sharing a slot.
	UpdatePosition(ctx context.Context, id int64, position int, status models.TaskStatus) (*models.Task, error)
	// MoveInColumn places the task at index of the destination column and
	// renumbers both affected columns to 0..n-1 under row locks.
	MoveInColumn(ctx context.Context, id int64, status models.TaskStatus, index int) (*models.Task, error)
	Rebalance(ctx context.Context, projectID *int64, status models.TaskStatus) error
}

type taskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	q := psql.Select(taskColumns...).From("tasks")
	switch {
	case filter.ProjectID != nil:
		q = q.Where(squirrel.Eq{"project_id": *filter.ProjectID})
	case filter.AssigneeID != nil:
		q = q.Where(squirrel.Eq{"assignee_id": *filter.AssigneeID})
	}
	query, args, err := q.OrderBy("position ASC").ToSql()
	if err != nil {
		return nil, err
	}

	tasks := []models.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	query, args, err := psql.Select(taskColumns...).From("tasks").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var t models.Task
	if err := r.db.GetContext(ctx, &t, query, args...); err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	query, args, err := psql.Insert("tasks").
		Columns("title", "description", "status", "priority", "due_date", "assignee_id", "project_id", "created_by_id", "position").
		Values(task.Title, task.Description, task.Status, task.Priority, task.DueDate, task.AssigneeID, task.ProjectID, task.CreatedByID, task.Position).
		Suffix(returning(taskColumns)).
		ToSql()
	if err != nil {
		return err
	}
	return r.db.GetContext(ctx, task, query, args...)
}

func (r *taskRepository) Update(ctx context.Context, id int64, u models.TaskUpdate) (*models.Task, error) {
	q := psql.Update("tasks")
	if u.Title != nil {
		q = q.Set("title", *u.Title)
	}
	if u.Description != nil {
		q = q.Set("description", nullString(*u.Description))
	}
	if u.Status != nil {
		q = q.Set("status", *u.Status)
	}
	if u.Priority != nil {
		q = q.Set("priority", *u.Priority)
	}
	if u.DueDate != nil {
		q = q.Set("due_date", *u.DueDate)
	}
	if u.AssigneeID != nil {
		q = q.Set("assignee_id", nullString(*u.AssigneeID))
	}
	if u.ProjectID != nil {
		q = q.Set("project_id", nullID(*u.ProjectID))
	}
	if u.Position != nil {
		q = q.Set("position", *u.Position)
	}
	query, args, err := q.Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix(returning(taskColumns)).
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.getReturning(ctx, r.db, query, args)
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

func (r *taskRepository) UpdatePosition(ctx context.Context, id int64, position int, status models.TaskStatus) (*models.Task, error) {
	query, args, err := psql.Update("tasks").
		Set("position", position).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix(returning(taskColumns)).
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.getReturning(ctx, r.db, query, args)
}

func (r *taskRepository) MoveInColumn(ctx context.Context, id int64, status models.TaskStatus, index int) (*models.Task, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query, args, err := psql.Select(taskColumns...).From("tasks").
		Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE").ToSql()
	if err != nil {
		return nil, err
	}
	var cur models.Task
	if err := tx.GetContext(ctx, &cur, query, args...); err != nil {
		if noRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	dest, err := lockColumn(ctx, tx, cur.ProjectID, status, id)
	if err != nil {
		return nil, fmt.Errorf("lock column %s: %w", status, err)
	}
	if index > len(dest) {
		index = len(dest)
	}
	order := make([]slot, 0, len(dest)+1)
	order = append(order, dest[:index]...)
	order = append(order, slot{ID: id, Position: -1})
	order = append(order, dest[index:]...)
	if err := renumber(ctx, tx, order); err != nil {
		return nil, err
	}

	query, args, err = psql.Update("tasks").
		Set("position", index).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix(returning(taskColumns)).
		ToSql()
	if err != nil {
		return nil, err
	}
	moved, err := r.getReturning(ctx, tx, query, args)
	if err != nil {
		return nil, err
	}

	if cur.Status != status {
		src, err := lockColumn(ctx, tx, cur.ProjectID, cur.Status, id)
		if err != nil {
			return nil, fmt.Errorf("lock column %s: %w", cur.Status, err)
		}
		if err := renumber(ctx, tx, src); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return moved, nil
}

func (r *taskRepository) Rebalance(ctx context.Context, projectID *int64, status models.TaskStatus) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	slots, err := lockColumn(ctx, tx, projectID, status, 0)
	if err != nil {
		return fmt.Errorf("lock column %s: %w", status, err)
	}
	if err := renumber(ctx, tx, slots); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *taskRepository) getReturning(ctx context.Context, q sqlx.QueryerContext, query string, args []any) (*models.Task, error) {
	var t models.Task
	if err := sqlx.GetContext(ctx, q, &t, query, args...); err != nil {
		if noRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

type slot struct {
	ID       int64 `db:"id"`
	Position int   `db:"position"`
}

// lockColumn returns the tasks of one board column in display order with
// their rows locked. exclude skips a task id (0 keeps all).
func lockColumn(ctx context.Context, tx *sqlx.Tx, projectID *int64, status models.TaskStatus, exclude int64) ([]slot, error) {
	q := psql.Select("id", "position").From("tasks").
		Where(squirrel.Expr("project_id IS NOT DISTINCT FROM ?", projectID)).
		Where(squirrel.Eq{"status": status})
	if exclude != 0 {
		q = q.Where(squirrel.NotEq{"id": exclude})
	}
	query, args, err := q.OrderBy("position ASC", "id ASC").Suffix("FOR UPDATE").ToSql()
	if err != nil {
		return nil, err
	}
	slots := []slot{}
	if err := tx.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, err
	}
	return slots, nil
}

// renumber writes position i to the i-th slot, skipping rows already in place
// and placeholders with a negative position.
func renumber(ctx context.Context, tx *sqlx.Tx, order []slot) error {
	for i, s := range order {
		if s.Position < 0 || s.Position == i {
			continue
		}
		if _, err := tx.ExecContext(ctx, `UPDATE tasks SET position = $1 WHERE id = $2`, i, s.ID); err != nil {
			return fmt.Errorf("renumber task %d: %w", s.ID, err)
		}
	}
	return nil
}
