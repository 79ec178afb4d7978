package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"doabli/internal/models"
)

type MemberRepository interface {
	ListByProject(ctx context.Context, projectID int64) ([]models.ProjectMember, error)
	Get(ctx context.Context, projectID int64, userID string) (*models.ProjectMember, error)
	// Add inserts the membership or updates the role of an existing one.
	Add(ctx context.Context, projectID int64, userID, role string) (*models.ProjectMember, error)
	Remove(ctx context.Context, projectID int64, userID string) error
}

type memberRepository struct {
	db *sqlx.DB
}

func NewMemberRepository(db *sqlx.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) ListByProject(ctx context.Context, projectID int64) ([]models.ProjectMember, error) {
	out := []models.ProjectMember{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, project_id, user_id, role, joined_at
		FROM project_members WHERE project_id = $1
		ORDER BY joined_at DESC`, projectID)
	return out, err
}

func (r *memberRepository) Get(ctx context.Context, projectID int64, userID string) (*models.ProjectMember, error) {
	var m models.ProjectMember
	err := r.db.GetContext(ctx, &m, `
		SELECT id, project_id, user_id, role, joined_at
		FROM project_members WHERE project_id = $1 AND user_id = $2`, projectID, userID)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *memberRepository) Add(ctx context.Context, projectID int64, userID, role string) (*models.ProjectMember, error) {
	var m models.ProjectMember
	err := r.db.GetContext(ctx, &m, `
		INSERT INTO project_members (project_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (project_id, user_id) DO UPDATE SET role = EXCLUDED.role
		RETURNING id, project_id, user_id, role, joined_at`, projectID, userID, role)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *memberRepository) Remove(ctx context.Context, projectID int64, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM project_members WHERE project_id = $1 AND user_id = $2`, projectID, userID)
	return err
}
