package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"doabli/internal/models"
	"doabli/internal/repositories"
)

// IdentityClaims is the ID token issued by the external identity provider.
type IdentityClaims struct {
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	ProfileImageURL string `json:"profile_image_url"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// Login verifies the provider token, upserts the user and opens a session.
	Login(ctx context.Context, idToken string) (*models.User, *models.Session, error)
	Resolve(ctx context.Context, sid string) (*models.User, error)
	Logout(ctx context.Context, sid string) error
	PurgeExpired(ctx context.Context) (int64, error)
}

type authService struct {
	users    repositories.UserRepository
	sessions repositories.SessionRepository
	secret   []byte
	issuer   string
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthService(users repositories.UserRepository, sessions repositories.SessionRepository, secret, issuer string, ttl time.Duration) AuthService {
	return &authService{
		users:    users,
		sessions: sessions,
		secret:   []byte(secret),
		issuer:   issuer,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *authService) Login(ctx context.Context, idToken string) (*models.User, *models.Session, error) {
	claims, err := s.verify(idToken)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.Upsert(ctx, models.UpsertUser{
		ID:              claims.Subject,
		Email:           optional(claims.Email),
		FirstName:       optional(claims.FirstName),
		LastName:        optional(claims.LastName),
		ProfileImageURL: optional(claims.ProfileImageURL),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("upsert user: %w", err)
	}

	sess := &models.Session{
		SID:    uuid.NewString(),
		UserID: user.ID,
		Expire: s.now().Add(s.ttl).UTC(),
	}
	if err := s.sessions.Create(ctx, sess.SID, sess.UserID, sess.Expire); err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}
	log.Printf("[auth][login] user=%s", user.ID)
	return user, sess, nil
}

func (s *authService) verify(idToken string) (*IdentityClaims, error) {
	if len(s.secret) == 0 {
		return nil, fmt.Errorf("%w: verification key not configured", ErrInvalidToken)
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(2 * time.Minute),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(idToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}

func (s *authService) Resolve(ctx context.Context, sid string) (*models.User, error) {
	if sid == "" {
		return nil, ErrUnauthenticated
	}
	sess, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	user, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

func (s *authService) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sid)
}

func (s *authService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.sessions.PurgeExpired(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return 0, err
	}
	return n, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
