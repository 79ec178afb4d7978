package models

import "time"

// User mirrors the identity record owned by the external auth provider.
type User struct {
	ID              string     `db:"id" json:"id"`
	Email           *string    `db:"email" json:"email"`
	FirstName       *string    `db:"first_name" json:"firstName"`
	LastName        *string    `db:"last_name" json:"lastName"`
	ProfileImageURL *string    `db:"profile_image_url" json:"profileImageUrl"`
	OnboardedAt     *time.Time `db:"onboarded_at" json:"onboardedAt"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updatedAt"`
}

// OnboardingCompleted reports whether the first-run wizard has been finished.
func (u *User) OnboardingCompleted() bool {
	return u != nil && u.OnboardedAt != nil
}

// DisplayName falls back to the e-mail when no name is known.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	name := ""
	if u.FirstName != nil {
		name = *u.FirstName
	}
	if u.LastName != nil && *u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += *u.LastName
	}
	if name == "" && u.Email != nil {
		name = *u.Email
	}
	return name
}

// UpsertUser is the identity payload received from the provider.
type UpsertUser struct {
	ID              string
	Email           *string
	FirstName       *string
	LastName        *string
	ProfileImageURL *string
}

// Session is a server-side login session keyed by an opaque id.
type Session struct {
	SID    string    `db:"sid" json:"-"`
	UserID string    `db:"user_id" json:"userId"`
	Expire time.Time `db:"expire" json:"expire"`
}
