// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package sec

// # User Roles

// UserRole represents the authorization level granted to a profile.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Can review submissions, manage the list, and moderate users
	RoleMod UserRole = "mod"

	// Default role for every signed-in profile
	RoleUser UserRole = "user"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
//
// The hierarchy is a total order: user < mod < admin. An admin therefore
// satisfies every requirement, and any known role satisfies RoleUser.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleMod:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}

// IsValid reports whether r is one of the three known roles.
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleMod || r == RoleUser
}
