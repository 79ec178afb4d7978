package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doabli/internal/models"
)

type memInvitations struct{ rows []models.Invitation }

func (m *memInvitations) Create(_ context.Context, inv *models.Invitation) error {
	inv.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, *inv)
	return nil
}

func (m *memInvitations) ListByProject(_ context.Context, projectID int64) ([]models.Invitation, error) {
	var out []models.Invitation
	for _, inv := range m.rows {
		if inv.ProjectID == projectID {
			out = append(out, inv)
		}
	}
	return out, nil
}

type memMembers struct{ rows []models.ProjectMember }

func (m *memMembers) ListByProject(_ context.Context, projectID int64) ([]models.ProjectMember, error) {
	var out []models.ProjectMember
	for _, pm := range m.rows {
		if pm.ProjectID == projectID {
			out = append(out, pm)
		}
	}
	return out, nil
}

func (m *memMembers) Get(_ context.Context, projectID int64, userID string) (*models.ProjectMember, error) {
	for _, pm := range m.rows {
		if pm.ProjectID == projectID && pm.UserID == userID {
			return &pm, nil
		}
	}
	return nil, nil
}

func (m *memMembers) Add(_ context.Context, projectID int64, userID, role string) (*models.ProjectMember, error) {
	pm := models.ProjectMember{ID: int64(len(m.rows) + 1), ProjectID: projectID, UserID: userID, Role: role}
	m.rows = append(m.rows, pm)
	return &pm, nil
}

func (m *memMembers) Remove(_ context.Context, projectID int64, userID string) error {
	out := m.rows[:0]
	for _, pm := range m.rows {
		if pm.ProjectID != projectID || pm.UserID != userID {
			out = append(out, pm)
		}
	}
	m.rows = out
	return nil
}

type recordingMailer struct {
	to, project, inviter, link string
	err                        error
}

func (r *recordingMailer) SendInvitation(to, projectName, inviterName, link string) error {
	r.to, r.project, r.inviter, r.link = to, projectName, inviterName, link
	return r.err
}

type inviteFixture struct {
	svc         InvitationService
	invitations *memInvitations
	members     *memMembers
	mailer      *recordingMailer
	projectID   int64
}

func newInviteFixture(t *testing.T, withMailer bool) inviteFixture {
	t.Helper()
	projects := newMemProjects()
	p := &models.Project{Name: "Launch", OwnerID: "u1"}
	require.NoError(t, projects.Create(context.Background(), p))

	first, bob := "Ada", "bob@example.com"
	users := newMemUsers(models.User{ID: "u1", FirstName: &first}, models.User{ID: "u2", Email: &bob})
	f := inviteFixture{invitations: &memInvitations{}, members: &memMembers{}, projectID: p.ID}

	var mailer EmailService
	if withMailer {
		f.mailer = &recordingMailer{}
		mailer = f.mailer
	}
	f.svc = NewInvitationService(f.invitations, f.members, projects, users, mailer, "https://doabli.test/")
	return f
}

func TestInviteExistingUserJoinsImmediately(t *testing.T) {
	f := newInviteFixture(t, true)

	inv, err := f.svc.Invite(context.Background(), "u1", models.InvitationInput{Email: "Bob@Example.com ", ProjectID: f.projectID})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", inv.Email)
	assert.Equal(t, "member", inv.Role)
	assert.NotEmpty(t, inv.Token)

	require.Len(t, f.members.rows, 1)
	assert.Equal(t, "u2", f.members.rows[0].UserID)

	assert.Equal(t, "bob@example.com", f.mailer.to)
	assert.Equal(t, "Launch", f.mailer.project)
	assert.Equal(t, "Ada", f.mailer.inviter)
	assert.Equal(t, "https://doabli.test/?invite="+inv.Token, f.mailer.link)
}

func TestInviteUnknownEmailOnlyRecords(t *testing.T) {
	f := newInviteFixture(t, false)

	_, err := f.svc.Invite(context.Background(), "u1", models.InvitationInput{Email: "new@example.com", Role: "viewer", ProjectID: f.projectID})
	require.NoError(t, err)
	assert.Len(t, f.invitations.rows, 1)
	assert.Empty(t, f.members.rows)
}

func TestInviteMailFailureStillRecords(t *testing.T) {
	f := newInviteFixture(t, true)
	f.mailer.err = errors.New("smtp down")

	_, err := f.svc.Invite(context.Background(), "u1", models.InvitationInput{Email: "new@example.com", ProjectID: f.projectID})
	require.NoError(t, err)
	assert.Len(t, f.invitations.rows, 1)
}

func TestInviteValidation(t *testing.T) {
	f := newInviteFixture(t, false)

	_, err := f.svc.Invite(context.Background(), "u1", models.InvitationInput{Email: "a@b.c", Role: "owner", ProjectID: f.projectID})
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = f.svc.Invite(context.Background(), "u1", models.InvitationInput{Email: "a@b.c", ProjectID: 404})
	assert.ErrorIs(t, err, ErrProjectNotFound)
	assert.Empty(t, f.invitations.rows)
}

func TestInviteRequiresOwnerOrAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("outsider cannot add themselves", func(t *testing.T) {
		f := newInviteFixture(t, false)
		_, err := f.svc.Invite(ctx, "u2", models.InvitationInput{Email: "bob@example.com", Role: "admin", ProjectID: f.projectID})
		assert.ErrorIs(t, err, ErrForbidden)
		assert.Empty(t, f.members.rows)
		assert.Empty(t, f.invitations.rows)
	})

	t.Run("viewer cannot promote themselves", func(t *testing.T) {
		f := newInviteFixture(t, false)
		f.members.rows = []models.ProjectMember{{ID: 1, ProjectID: f.projectID, UserID: "u2", Role: "viewer"}}

		_, err := f.svc.Invite(ctx, "u2", models.InvitationInput{Email: "bob@example.com", Role: "admin", ProjectID: f.projectID})
		assert.ErrorIs(t, err, ErrForbidden)
		require.Len(t, f.members.rows, 1)
		assert.Equal(t, "viewer", f.members.rows[0].Role)
	})

	t.Run("admin member may invite", func(t *testing.T) {
		f := newInviteFixture(t, false)
		f.members.rows = []models.ProjectMember{{ID: 1, ProjectID: f.projectID, UserID: "u3", Role: "admin"}}

		_, err := f.svc.Invite(ctx, "u3", models.InvitationInput{Email: "bob@example.com", ProjectID: f.projectID})
		require.NoError(t, err)
		assert.Len(t, f.invitations.rows, 1)
	})
}

func TestRemoveMember(t *testing.T) {
	f := newInviteFixture(t, false)
	_, err := f.svc.Invite(context.Background(), "u1", models.InvitationInput{Email: "bob@example.com", ProjectID: f.projectID})
	require.NoError(t, err)

	require.NoError(t, f.svc.RemoveMember(context.Background(), f.projectID, "u2"))
	members, err := f.svc.ListMembers(context.Background(), f.projectID)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestInvitationMessageEscapesNames(t *testing.T) {
	m := invitationMessage("noreply@doabli.test", "bob@example.com", "<script>", "", "https://x")
	assert.Equal(t, []string{"bob@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"You're invited to <script> on Doabli"}, m.GetHeader("Subject"))
}
