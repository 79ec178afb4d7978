package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"doabli/internal/models"
)

type SessionRepository interface {
	Create(ctx context.Context, sid, userID string, expire time.Time) error
	// Get returns nil for unknown or expired sessions.
	Get(ctx context.Context, sid string) (*models.Session, error)
	Delete(ctx context.Context, sid string) error
	PurgeExpired(ctx context.Context) (int64, error)
}

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

type sessionData struct {
	UserID string `json:"userId"`
}

func (r *sessionRepository) Create(ctx context.Context, sid, userID string, expire time.Time) error {
	sess, err := json.Marshal(sessionData{UserID: userID})
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO sessions (sid, sess, expire) VALUES ($1, $2, $3)`, sid, sess, expire)
	return err
}

func (r *sessionRepository) Get(ctx context.Context, sid string) (*models.Session, error) {
	var s models.Session
	err := r.db.GetContext(ctx, &s, `
		SELECT sid, sess->>'userId' AS user_id, expire
		FROM sessions WHERE sid = $1 AND expire > NOW()`, sid)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, sid string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE sid = $1`, sid)
	return err
}

func (r *sessionRepository) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expire <= NOW()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
