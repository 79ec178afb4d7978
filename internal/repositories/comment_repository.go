package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"doabli/internal/models"
)

type CommentRepository interface {
	ListByTask(ctx context.Context, taskID int64) ([]models.TaskComment, error)
	GetByID(ctx context.Context, id int64) (*models.TaskComment, error)
	Create(ctx context.Context, c *models.TaskComment) error
	Delete(ctx context.Context, id int64) error
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) ListByTask(ctx context.Context, taskID int64) ([]models.TaskComment, error) {
	out := []models.TaskComment{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, content, task_id, user_id, created_at
		FROM task_comments WHERE task_id = $1
		ORDER BY created_at DESC`, taskID)
	return out, err
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*models.TaskComment, error) {
	var c models.TaskComment
	err := r.db.GetContext(ctx, &c, `SELECT id, content, task_id, user_id, created_at FROM task_comments WHERE id = $1`, id)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *commentRepository) Create(ctx context.Context, c *models.TaskComment) error {
	return r.db.GetContext(ctx, c, `
		INSERT INTO task_comments (content, task_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, content, task_id, user_id, created_at`,
		c.Content, c.TaskID, c.UserID)
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM task_comments WHERE id = $1`, id)
	return err
}
