// internal/services/task_service.go
package services

import (
	"context"
	"strings"
	"time"

	"doabli/internal/board"
	"doabli/internal/models"
	"doabli/internal/repositories"
)

// TaskService defines the interface for task-related business logic.
type TaskService interface {
	List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	Create(ctx context.Context, creatorID string, in models.TaskInput) (*models.Task, error)
	Update(ctx context.Context, id int64, u models.TaskUpdate) (*models.Task, error)
	// Delete returns the removed task, or nil if it did not exist.
	Delete(ctx context.Context, id int64) (*models.Task, error)

	UpdatePosition(ctx context.Context, id int64, position int, status string) (*models.Task, error)
	Move(ctx context.Context, id int64, status string, index int) (*models.Task, error)

	Board(ctx context.Context, projectID int64) ([]board.Column, error)
	// Rebalance renumbers one column (or all when status is empty) to 0..n-1.
	Rebalance(ctx context.Context, projectID int64, status string) ([]board.Column, error)
	Calendar(ctx context.Context, userID string, from, to models.Date) ([]models.Task, error)
	Day(ctx context.Context, userID string, day models.Date) ([]models.Task, error)
	// Upcoming lists the user's next deadlines after today; limit <= 0 means all.
	Upcoming(ctx context.Context, userID string, limit int) ([]models.Task, error)
	DashboardStats(ctx context.Context, userID string) (models.DashboardStats, error)
}

type taskService struct {
	repo repositories.TaskRepository
	loc  *time.Location
	now  func() time.Time
}

// NewTaskService creates a TaskService; loc decides which calendar day counts as today.
func NewTaskService(repo repositories.TaskRepository, loc *time.Location) TaskService {
	if loc == nil {
		loc = time.UTC
	}
	return &taskService{repo: repo, loc: loc, now: time.Now}
}

func (s *taskService) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	return s.repo.List(ctx, filter)
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *taskService) Create(ctx context.Context, creatorID string, in models.TaskInput) (*models.Task, error) {
	status := models.StatusTodo
	if in.Status != "" {
		status = models.NormalizeStatus(in.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
	}
	priority := models.PriorityMedium
	if in.Priority != "" {
		priority = models.TaskPriority(in.Priority)
		if !priority.Valid() {
			return nil, ErrInvalidPriority
		}
	}
	task := &models.Task{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     in.DueDate,
		AssigneeID:  in.AssigneeID,
		ProjectID:   in.ProjectID,
		CreatedByID: creatorID,
	}
	if task.DueDate != nil && task.DueDate.IsZero() {
		task.DueDate = nil
	}
	if in.Position != nil {
		if *in.Position < 0 {
			return nil, ErrInvalidPosition
		}
		task.Position = *in.Position
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Update(ctx context.Context, id int64, u models.TaskUpdate) (*models.Task, error) {
	if u.Status != nil {
		st := models.NormalizeStatus(*u.Status)
		if !st.Valid() {
			return nil, ErrInvalidStatus
		}
		v := string(st)
		u.Status = &v
	}
	if u.Priority != nil && !models.TaskPriority(*u.Priority).Valid() {
		return nil, ErrInvalidPriority
	}
	if u.Position != nil && *u.Position < 0 {
		return nil, ErrInvalidPosition
	}
	if u.Empty() {
		t, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, repositories.ErrNotFound
		}
		return t, nil
	}
	return s.repo.Update(ctx, id, u)
}

func (s *taskService) Delete(ctx context.Context, id int64) (*models.Task, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *taskService) UpdatePosition(ctx context.Context, id int64, position int, status string) (*models.Task, error) {
	st := models.NormalizeStatus(status)
	if !st.Valid() {
		return nil, ErrInvalidStatus
	}
	if position < 0 {
		return nil, ErrInvalidPosition
	}
	return s.repo.UpdatePosition(ctx, id, position, st)
}

func (s *taskService) Move(ctx context.Context, id int64, status string, index int) (*models.Task, error) {
	st := models.NormalizeStatus(status)
	if !st.Valid() {
		return nil, ErrInvalidStatus
	}
	if index < 0 {
		return nil, ErrInvalidPosition
	}
	return s.repo.MoveInColumn(ctx, id, st, index)
}

func (s *taskService) Board(ctx context.Context, projectID int64) ([]board.Column, error) {
	tasks, err := s.repo.List(ctx, models.TaskFilter{ProjectID: &projectID})
	if err != nil {
		return nil, err
	}
	return board.Partition(tasks), nil
}

func (s *taskService) Rebalance(ctx context.Context, projectID int64, status string) ([]board.Column, error) {
	statuses := models.Statuses
	if status != "" {
		st := models.NormalizeStatus(status)
		if !st.Valid() {
			return nil, ErrInvalidStatus
		}
		statuses = []models.TaskStatus{st}
	}
	for _, st := range statuses {
		if err := s.repo.Rebalance(ctx, &projectID, st); err != nil {
			return nil, err
		}
	}
	return s.Board(ctx, projectID)
}

func (s *taskService) Calendar(ctx context.Context, userID string, from, to models.Date) ([]models.Task, error) {
	tasks, err := s.repo.List(ctx, models.TaskFilter{AssigneeID: &userID})
	if err != nil {
		return nil, err
	}
	return board.DueBetween(tasks, from, to), nil
}

func (s *taskService) Day(ctx context.Context, userID string, day models.Date) ([]models.Task, error) {
	tasks, err := s.repo.List(ctx, models.TaskFilter{AssigneeID: &userID})
	if err != nil {
		return nil, err
	}
	return board.OnDay(tasks, day), nil
}

func (s *taskService) Upcoming(ctx context.Context, userID string, limit int) ([]models.Task, error) {
	tasks, err := s.repo.List(ctx, models.TaskFilter{AssigneeID: &userID})
	if err != nil {
		return nil, err
	}
	return board.Upcoming(tasks, s.today(), limit), nil
}

// DashboardStats reduces the user's assigned tasks in one pass.
func (s *taskService) DashboardStats(ctx context.Context, userID string) (models.DashboardStats, error) {
	var stats models.DashboardStats
	tasks, err := s.repo.List(ctx, models.TaskFilter{AssigneeID: &userID})
	if err != nil {
		return stats, err
	}
	today := s.today()
	for _, t := range tasks {
		stats.TotalTasks++
		switch models.NormalizeStatus(string(t.Status)) {
		case models.StatusDone:
			stats.CompletedTasks++
		case models.StatusInProgress:
			stats.InProgressTasks++
		}
		if board.Overdue(t, today) {
			stats.OverdueTasks++
		}
	}
	return stats, nil
}

func (s *taskService) today() models.Date {
	return models.DateOf(s.now().In(s.loc))
}
