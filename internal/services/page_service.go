package services

import (
	"context"
	"fmt"
	"strings"

	"doabli/internal/models"
	"doabli/internal/repositories"
)

type PageService interface {
	List(ctx context.Context, projectID *int64) ([]models.Page, error)
	GetByID(ctx context.Context, id int64) (*models.Page, error)
	Create(ctx context.Context, userID string, in models.PageInput) (*models.Page, error)
	Update(ctx context.Context, id int64, u models.PageUpdate) (*models.Page, error)
	Delete(ctx context.Context, id int64) error
}

type pageService struct {
	repo repositories.PageRepository
}

func NewPageService(repo repositories.PageRepository) PageService {
	return &pageService{repo: repo}
}

func (s *pageService) List(ctx context.Context, projectID *int64) ([]models.Page, error) {
	return s.repo.List(ctx, projectID)
}

func (s *pageService) GetByID(ctx context.Context, id int64) (*models.Page, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *pageService) Create(ctx context.Context, userID string, in models.PageInput) (*models.Page, error) {
	p := &models.Page{
		Title:       strings.TrimSpace(in.Title),
		ProjectID:   in.ProjectID,
		CreatedByID: userID,
		ParentID:    in.ParentID,
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	if p.ParentID != nil {
		if *p.ParentID == 0 {
			p.ParentID = nil
		} else if err := s.requireParent(ctx, *p.ParentID); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *pageService) Update(ctx context.Context, id int64, u models.PageUpdate) (*models.Page, error) {
	if u.ParentID != nil && *u.ParentID != 0 {
		parent := *u.ParentID
		if parent == id {
			return nil, ErrPageCycle
		}
		if err := s.requireParent(ctx, parent); err != nil {
			return nil, err
		}
		chain, err := s.repo.ParentChain(ctx, parent)
		if err != nil {
			return nil, fmt.Errorf("page ancestry: %w", err)
		}
		for _, ancestor := range chain {
			if ancestor == id {
				return nil, ErrPageCycle
			}
		}
	}
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

func (s *pageService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *pageService) requireParent(ctx context.Context, id int64) error {
	parent, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if parent == nil {
		return ErrParentNotFound
	}
	return nil
}
