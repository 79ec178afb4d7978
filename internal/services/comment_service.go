package services

import (
	"context"
	"strings"

	"doabli/internal/models"
	"doabli/internal/repositories"
)

type CommentService interface {
	List(ctx context.Context, taskID int64) ([]models.TaskComment, error)
	Create(ctx context.Context, taskID int64, userID, content string) (*models.TaskComment, error)
	Delete(ctx context.Context, id int64) error
}

type commentService struct {
	repo  repositories.CommentRepository
	tasks repositories.TaskRepository
}

func NewCommentService(repo repositories.CommentRepository, tasks repositories.TaskRepository) CommentService {
	return &commentService{repo: repo, tasks: tasks}
}

func (s *commentService) List(ctx context.Context, taskID int64) ([]models.TaskComment, error) {
	return s.repo.ListByTask(ctx, taskID)
}

func (s *commentService) Create(ctx context.Context, taskID int64, userID, content string) (*models.TaskComment, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	c := &models.TaskComment{Content: strings.TrimSpace(content), TaskID: taskID, UserID: userID}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *commentService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
