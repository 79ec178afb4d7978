package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"doabli/internal/models"
)

const userColumns = `id, email, first_name, last_name, profile_image_url, onboarded_at, created_at, updated_at`

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Upsert(ctx context.Context, u models.UpsertUser) (*models.User, error)
	// ClaimOnboarding stamps onboarded_at if it is still unset and reports whether this call did it.
	ClaimOnboarding(ctx context.Context, id string) (bool, error)
	ReleaseOnboarding(ctx context.Context, id string) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	if err := r.db.GetContext(ctx, &u, query, arg); err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Upsert keys on the provider-issued id; profile fields are overwritten.
func (r *userRepository) Upsert(ctx context.Context, in models.UpsertUser) (*models.User, error) {
	const q = `
		INSERT INTO users (id, email, first_name, last_name, profile_image_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			profile_image_url = EXCLUDED.profile_image_url,
			updated_at = NOW()
		RETURNING ` + userColumns
	var u models.User
	if err := r.db.GetContext(ctx, &u, q, in.ID, in.Email, in.FirstName, in.LastName, in.ProfileImageURL); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) ClaimOnboarding(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET onboarded_at = NOW(), updated_at = NOW() WHERE id = $1 AND onboarded_at IS NULL`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *userRepository) ReleaseOnboarding(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET onboarded_at = NULL, updated_at = NOW() WHERE id = $1`, id)
	return err
}
