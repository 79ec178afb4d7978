package services

import "errors"

var (
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidPriority  = errors.New("invalid priority")
	ErrInvalidPosition  = errors.New("position must be non-negative")
	ErrInvalidRole      = errors.New("invalid role")
	ErrTaskNotFound     = errors.New("task not found")
	ErrProjectNotFound  = errors.New("project not found")
	ErrParentNotFound   = errors.New("parent page not found")
	ErrPageCycle        = errors.New("page cannot be moved under itself")
	ErrFileTooLarge     = errors.New("file too large")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrInvalidToken     = errors.New("invalid identity token")
	ErrAlreadyOnboarded = errors.New("onboarding already completed")
	ErrForbidden        = errors.New("not allowed for this project")
)
