package services

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"doabli/internal/authz"
	"doabli/internal/models"
	"doabli/internal/repositories"
)

// InvitationService records invitations and manages project membership.
type InvitationService interface {
	Invite(ctx context.Context, inviterID string, in models.InvitationInput) (*models.Invitation, error)
	ListInvitations(ctx context.Context, projectID int64) ([]models.Invitation, error)
	ListMembers(ctx context.Context, projectID int64) ([]models.ProjectMember, error)
	RemoveMember(ctx context.Context, projectID int64, userID string) error
}

type invitationService struct {
	invitations repositories.InvitationRepository
	members     repositories.MemberRepository
	projects    repositories.ProjectRepository
	users       repositories.UserRepository
	mailer      EmailService
	publicURL   string
}

// NewInvitationService wires the service; mailer may be nil when SMTP is not configured.
func NewInvitationService(
	invitations repositories.InvitationRepository,
	members repositories.MemberRepository,
	projects repositories.ProjectRepository,
	users repositories.UserRepository,
	mailer EmailService,
	publicURL string,
) InvitationService {
	return &invitationService{
		invitations: invitations,
		members:     members,
		projects:    projects,
		users:       users,
		mailer:      mailer,
		publicURL:   strings.TrimRight(publicURL, "/"),
	}
}

func (s *invitationService) Invite(ctx context.Context, inviterID string, in models.InvitationInput) (*models.Invitation, error) {
	role := authz.NormalizeRole(in.Role)
	if !authz.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	project, err := s.projects.GetByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	if err := s.canManage(ctx, project, inviterID); err != nil {
		return nil, err
	}

	inv := &models.Invitation{
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Role:        role,
		ProjectID:   project.ID,
		InvitedByID: inviterID,
		Token:       uuid.NewString(),
	}
	if err := s.invitations.Create(ctx, inv); err != nil {
		return nil, err
	}

	invitee, err := s.users.GetByEmail(ctx, inv.Email)
	if err != nil {
		return nil, err
	}
	if invitee != nil {
		if _, err := s.members.Add(ctx, project.ID, invitee.ID, role); err != nil {
			return nil, err
		}
		log.Printf("[invite] user=%s joined project=%d as %s", invitee.ID, project.ID, role)
	}

	s.notify(ctx, inv, project, inviterID)
	return inv, nil
}

// canManage allows the project owner and admin members.
func (s *invitationService) canManage(ctx context.Context, project *models.Project, userID string) error {
	if userID != "" && project.OwnerID == userID {
		return nil
	}
	m, err := s.members.Get(ctx, project.ID, userID)
	if err != nil {
		return err
	}
	if m == nil || !authz.IsElevated(m.Role) {
		log.Printf("[invite][forbidden] user=%s project=%d", userID, project.ID)
		return ErrForbidden
	}
	return nil
}

func (s *invitationService) notify(ctx context.Context, inv *models.Invitation, project *models.Project, inviterID string) {
	link := s.publicURL + "/?invite=" + inv.Token
	if s.mailer == nil {
		log.Printf("[invite][mail][skip] smtp not configured, email=%s project=%d", inv.Email, project.ID)
		return
	}
	var inviterName string
	if inviter, err := s.users.GetByID(ctx, inviterID); err == nil && inviter != nil {
		inviterName = inviter.DisplayName()
	}
	if err := s.mailer.SendInvitation(inv.Email, project.Name, inviterName, link); err != nil {
		log.Printf("[invite][mail][err] %v", err)
	}
}

func (s *invitationService) ListInvitations(ctx context.Context, projectID int64) ([]models.Invitation, error) {
	return s.invitations.ListByProject(ctx, projectID)
}

func (s *invitationService) ListMembers(ctx context.Context, projectID int64) ([]models.ProjectMember, error) {
	return s.members.ListByProject(ctx, projectID)
}

func (s *invitationService) RemoveMember(ctx context.Context, projectID int64, userID string) error {
	return s.members.Remove(ctx, projectID, userID)
}
