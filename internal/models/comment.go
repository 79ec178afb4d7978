package models

import "time"

type TaskComment struct {
	ID        int64     `db:"id" json:"id"`
	Content   string    `db:"content" json:"content"`
	TaskID    int64     `db:"task_id" json:"taskId"`
	UserID    string    `db:"user_id" json:"userId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type CommentInput struct {
	Content string `json:"content" binding:"required"`
}

type TaskAttachment struct {
	ID           int64     `db:"id" json:"id"`
	FileName     string    `db:"file_name" json:"fileName"`
	FileSize     *int64    `db:"file_size" json:"fileSize"`
	MimeType     *string   `db:"mime_type" json:"mimeType"`
	FilePath     string    `db:"file_path" json:"-"`
	TaskID       int64     `db:"task_id" json:"taskId"`
	UploadedByID string    `db:"uploaded_by_id" json:"uploadedById"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
