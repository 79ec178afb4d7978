package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"doabli/internal/models"
)

const attachmentColumns = `id, file_name, file_size, mime_type, file_path, task_id, uploaded_by_id, created_at`

type AttachmentRepository interface {
	ListByTask(ctx context.Context, taskID int64) ([]models.TaskAttachment, error)
	GetByID(ctx context.Context, id int64) (*models.TaskAttachment, error)
	Create(ctx context.Context, a *models.TaskAttachment) error
	Delete(ctx context.Context, id int64) error
}

type attachmentRepository struct {
	db *sqlx.DB
}

func NewAttachmentRepository(db *sqlx.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) ListByTask(ctx context.Context, taskID int64) ([]models.TaskAttachment, error) {
	out := []models.TaskAttachment{}
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+attachmentColumns+` FROM task_attachments WHERE task_id = $1 ORDER BY created_at DESC`, taskID)
	return out, err
}

func (r *attachmentRepository) GetByID(ctx context.Context, id int64) (*models.TaskAttachment, error) {
	var a models.TaskAttachment
	if err := r.db.GetContext(ctx, &a, `SELECT `+attachmentColumns+` FROM task_attachments WHERE id = $1`, id); err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *attachmentRepository) Create(ctx context.Context, a *models.TaskAttachment) error {
	return r.db.GetContext(ctx, a, `
		INSERT INTO task_attachments (file_name, file_size, mime_type, file_path, task_id, uploaded_by_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+attachmentColumns,
		a.FileName, a.FileSize, a.MimeType, a.FilePath, a.TaskID, a.UploadedByID)
}

func (r *attachmentRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM task_attachments WHERE id = $1`, id)
	return err
}
