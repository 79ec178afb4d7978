package services

import (
	"context"
	"strings"

	"doabli/internal/models"
	"doabli/internal/repositories"
)

// AutomationService stores automation definitions. Nothing executes them.
type AutomationService interface {
	List(ctx context.Context, projectID *int64) ([]models.Automation, error)
	Create(ctx context.Context, userID string, in models.AutomationInput) (*models.Automation, error)
	Update(ctx context.Context, id int64, u models.AutomationUpdate) (*models.Automation, error)
	Toggle(ctx context.Context, id int64) (*models.Automation, error)
	Delete(ctx context.Context, id int64) error
}

type automationService struct {
	repo repositories.AutomationRepository
}

func NewAutomationService(repo repositories.AutomationRepository) AutomationService {
	return &automationService{repo: repo}
}

func (s *automationService) List(ctx context.Context, projectID *int64) ([]models.Automation, error) {
	return s.repo.List(ctx, projectID)
}

func (s *automationService) Create(ctx context.Context, userID string, in models.AutomationInput) (*models.Automation, error) {
	a := &models.Automation{
		Name:        strings.TrimSpace(in.Name),
		Trigger:     in.Trigger,
		Actions:     in.Actions,
		IsActive:    true,
		ProjectID:   in.ProjectID,
		CreatedByID: userID,
	}
	if in.IsActive != nil {
		a.IsActive = *in.IsActive
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *automationService) Update(ctx context.Context, id int64, u models.AutomationUpdate) (*models.Automation, error) {
	if u.Empty() {
		a, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return nil, repositories.ErrNotFound
		}
		return a, nil
	}
	return s.repo.Update(ctx, id, u)
}

func (s *automationService) Toggle(ctx context.Context, id int64) (*models.Automation, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, repositories.ErrNotFound
	}
	next := !a.IsActive
	return s.repo.Update(ctx, id, models.AutomationUpdate{IsActive: &next})
}

func (s *automationService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
