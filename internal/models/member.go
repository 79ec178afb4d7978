package models

import "time"

type ProjectMember struct {
	ID        int64     `db:"id" json:"id"`
	ProjectID int64     `db:"project_id" json:"projectId"`
	UserID    string    `db:"user_id" json:"userId"`
	Role      string    `db:"role" json:"role"`
	JoinedAt  time.Time `db:"joined_at" json:"joinedAt"`
}

// Invitation records the intent to add someone to a project.
type Invitation struct {
	ID          int64     `db:"id" json:"id"`
	Email       string    `db:"email" json:"email"`
	Role        string    `db:"role" json:"role"`
	ProjectID   int64     `db:"project_id" json:"projectId"`
	InvitedByID string    `db:"invited_by_id" json:"invitedById"`
	Token       string    `db:"token" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

type InvitationInput struct {
	Email     string `json:"email" binding:"required,email"`
	Role      string `json:"role"`
	ProjectID int64  `json:"projectId" binding:"required,min=1"`
}
