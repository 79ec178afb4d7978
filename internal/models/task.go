// internal/models/task.go
package models

import (
	"strings"
	"time"
)

// TaskStatus is the kanban column a task sits in.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusReview     TaskStatus = "review"
	StatusDone       TaskStatus = "done"
)

// Statuses lists the columns in board order.
var Statuses = []TaskStatus{StatusTodo, StatusInProgress, StatusReview, StatusDone}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// NormalizeStatus maps legacy spellings onto the canonical enumeration.
// Unknown values are returned lower-cased and trimmed so callers can reject them.
func NormalizeStatus(s string) TaskStatus {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "in_progress", "inprogress", "in progress":
		return StatusInProgress
	case "completed", "complete":
		return StatusDone
	case "to-do", "to_do":
		return StatusTodo
	}
	return TaskStatus(v)
}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a row of the tasks table.
type Task struct {
	ID          int64        `db:"id" json:"id"`
	Title       string       `db:"title" json:"title"`
	Description *string      `db:"description" json:"description"`
	Status      TaskStatus   `db:"status" json:"status"`
	Priority    TaskPriority `db:"priority" json:"priority"`
	DueDate     *Date        `db:"due_date" json:"dueDate"`
	AssigneeID  *string      `db:"assignee_id" json:"assigneeId"`
	ProjectID   *int64       `db:"project_id" json:"projectId"`
	CreatedByID string       `db:"created_by_id" json:"createdById"`
	Position    int          `db:"position" json:"position"`
	CreatedAt   time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updatedAt"`
}

// TaskInput is the create payload.
type TaskInput struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *Date   `json:"dueDate"`
	AssigneeID  *string `json:"assigneeId"`
	ProjectID   *int64  `json:"projectId"`
	Position    *int    `json:"position" binding:"omitempty,min=0"`
}

// TaskUpdate carries a partial update; nil fields are left untouched.
// A zero DueDate clears the column.
type TaskUpdate struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *Date   `json:"dueDate"`
	AssigneeID  *string `json:"assigneeId"`
	ProjectID   *int64  `json:"projectId"`
	Position    *int    `json:"position" binding:"omitempty,min=0"`
}

// Empty reports whether the update touches no column.
func (u TaskUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil && u.Priority == nil &&
		u.DueDate == nil && u.AssigneeID == nil && u.ProjectID == nil && u.Position == nil
}

// PositionUpdate is the body of PUT /api/tasks/:id/position.
type PositionUpdate struct {
	Position *int   `json:"position" binding:"required,min=0"`
	Status   string `json:"status" binding:"required"`
}

// MoveRequest is the body of PUT /api/tasks/:id/move.
type MoveRequest struct {
	Status string `json:"status" binding:"required"`
	Index  int    `json:"index" binding:"min=0"`
}

// TaskFilter scopes a task listing. ProjectID wins when both are set.
type TaskFilter struct {
	ProjectID  *int64
	AssigneeID *string
}
