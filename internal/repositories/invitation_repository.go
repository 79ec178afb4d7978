package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"doabli/internal/models"
)

type InvitationRepository interface {
	Create(ctx context.Context, inv *models.Invitation) error
	ListByProject(ctx context.Context, projectID int64) ([]models.Invitation, error)
}

type invitationRepository struct {
	db *sqlx.DB
}

func NewInvitationRepository(db *sqlx.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(ctx context.Context, inv *models.Invitation) error {
	return r.db.GetContext(ctx, inv, `
		INSERT INTO invitations (email, role, project_id, invited_by_id, token)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, role, project_id, invited_by_id, token, created_at`,
		inv.Email, inv.Role, inv.ProjectID, inv.InvitedByID, inv.Token)
}

func (r *invitationRepository) ListByProject(ctx context.Context, projectID int64) ([]models.Invitation, error) {
	out := []models.Invitation{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, email, role, project_id, invited_by_id, token, created_at
		FROM invitations WHERE project_id = $1
		ORDER BY created_at DESC`, projectID)
	return out, err
}
