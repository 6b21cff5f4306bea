package common

import (
	"fmt"
	"strings"
)

// Role is the kind of account a user holds. It is fixed at signup.
type Role string

const (
	RoleStudent Role = "student"
	RoleAlumni  Role = "alumni"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleStudent, RoleAlumni}

// IsValid reports whether r is one of the predefined roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleAlumni:
		return true
	default:
		return false
	}
}

func (r Role) String() string { return string(r) }

// ParseRole converts user input into a Role. Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
	}
	return r, nil
}

// DashboardViews lists the sub-views available under every dashboard.
var DashboardViews = []string{
	"sessions",
	"doubts",
	"messages",
	"interviews",
	"events",
	"network",
	"profile",
}

// HomePath returns the dashboard a user of role r lands on. Unknown roles
// map to PublicEntryPath.
func (r Role) HomePath() string {
	switch r {
	case RoleStudent:
		return "/student-dashboard"
	case RoleAlumni:
		return "/alumni-dashboard"
	default:
		return PublicEntryPath
	}
}
