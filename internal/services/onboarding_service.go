package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"doabli/internal/models"
	"doabli/internal/repositories"
)

const (
	DefaultOnboardingProject  = "My First Project"
	DefaultOnboardingTask     = "Welcome to Doabli!"
	SkippedOnboardingTask     = "Get started with Doabli"
	onboardingProjectColor    = "#3b82f6"
	onboardingProjectDesc     = "Your first project to get started with Doabli"
	onboardingTaskDescription = "Complete this task to learn the basics of task management"
)

type OnboardingResult struct {
	Project *models.Project `json:"project"`
	Task    *models.Task    `json:"task"`
}

// OnboardingService seeds a first project and task and records completion.
type OnboardingService interface {
	Complete(ctx context.Context, userID string, req models.OnboardingRequest) (*OnboardingResult, error)
}

type onboardingService struct {
	users    repositories.UserRepository
	projects ProjectService
	tasks    TaskService
}

func NewOnboardingService(users repositories.UserRepository, projects ProjectService, tasks TaskService) OnboardingService {
	return &onboardingService{users: users, projects: projects, tasks: tasks}
}

func (s *onboardingService) Complete(ctx context.Context, userID string, req models.OnboardingRequest) (*OnboardingResult, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}
	if user.OnboardingCompleted() {
		return nil, ErrAlreadyOnboarded
	}
	claimed, err := s.users.ClaimOnboarding(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("claim onboarding: %w", err)
	}
	if !claimed {
		return nil, ErrAlreadyOnboarded
	}

	res, err := s.seed(ctx, userID, req)
	if err != nil {
		if rerr := s.users.ReleaseOnboarding(ctx, userID); rerr != nil {
			log.Printf("[onboarding][release][err] user=%s: %v", userID, rerr)
		}
		return nil, err
	}
	return res, nil
}

func (s *onboardingService) seed(ctx context.Context, userID string, req models.OnboardingRequest) (*OnboardingResult, error) {
	projectName, taskName := strings.TrimSpace(req.ProjectName), strings.TrimSpace(req.TaskName)
	if req.Skip {
		projectName, taskName = DefaultOnboardingProject, SkippedOnboardingTask
	}
	if projectName == "" {
		projectName = DefaultOnboardingProject
	}
	if taskName == "" {
		taskName = DefaultOnboardingTask
	}

	desc := onboardingProjectDesc
	project, err := s.projects.Create(ctx, userID, models.ProjectInput{
		Name:        projectName,
		Description: &desc,
		Color:       onboardingProjectColor,
	})
	if err != nil {
		return nil, fmt.Errorf("onboarding project: %w", err)
	}

	taskDesc := onboardingTaskDescription
	task, err := s.tasks.Create(ctx, userID, models.TaskInput{
		Title:       taskName,
		Description: &taskDesc,
		Status:      string(models.StatusTodo),
		Priority:    string(models.PriorityMedium),
		AssigneeID:  &userID,
		ProjectID:   &project.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("onboarding task: %w", err)
	}
	return &OnboardingResult{Project: project, Task: task}, nil
}
