package services

import (
	"context"
	"strings"

	"doabli/internal/models"
	"doabli/internal/repositories"
)

type ProjectService interface {
	List(ctx context.Context, ownerID string) ([]models.Project, error)
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	Create(ctx context.Context, ownerID string, in models.ProjectInput) (*models.Project, error)
	Update(ctx context.Context, id int64, u models.ProjectUpdate) (*models.Project, error)
	Delete(ctx context.Context, id int64) error
}

type projectService struct {
	repo repositories.ProjectRepository
}

func NewProjectService(repo repositories.ProjectRepository) ProjectService {
	return &projectService{repo: repo}
}

func (s *projectService) List(ctx context.Context, ownerID string) ([]models.Project, error) {
	return s.repo.List(ctx, ownerID)
}

func (s *projectService) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *projectService) Create(ctx context.Context, ownerID string, in models.ProjectInput) (*models.Project, error) {
	p := &models.Project{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Color:       in.Color,
		OwnerID:     ownerID,
	}
	if p.Color == "" {
		p.Color = models.DefaultProjectColor
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) Update(ctx context.Context, id int64, u models.ProjectUpdate) (*models.Project, error) {
	if u.Empty() {
		p, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, repositories.ErrNotFound
		}
		return p, nil
	}
	return s.repo.Update(ctx, id, u)
}

// Delete removes the project and, through the schema, everything scoped to it.
func (s *projectService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
