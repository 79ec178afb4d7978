package authz

import "strings"

// Project member roles.
const (
	RoleViewer = "viewer"
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// NormalizeRole lower-cases r and maps the empty string to RoleMember.
func NormalizeRole(r string) string {
	r = strings.ToLower(strings.TrimSpace(r))
	if r == "" {
		return RoleMember
	}
	return r
}

func ValidRole(r string) bool {
	switch r {
	case RoleViewer, RoleMember, RoleAdmin:
		return true
	}
	return false
}

func IsElevated(role string) bool {
	return role == RoleAdmin
}

func IsReadOnly(role string) bool {
	return role == RoleViewer
}
