// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package sec

// # Action Policy

// Action identifies an authorization-sensitive operation.
type Action string

const (
	// ActionSubmit covers queueing level and record submissions. Any
	// signed-in, non-banned member may submit.
	ActionSubmit Action = "submit"

	// ActionReviewSubmissions covers listing pending submissions and
	// approving or rejecting them.
	ActionReviewSubmissions Action = "review_submissions"

	// ActionManageLevels covers adding levels directly and reordering the list.
	ActionManageLevels Action = "manage_levels"

	// ActionManageUsers covers listing profiles and toggling bans and mod roles.
	ActionManageUsers Action = "manage_users"

	// ActionGrantAdmin covers toggling the admin role on a profile.
	ActionGrantAdmin Action = "grant_admin"
)

// policy maps each action to the minimum role allowed to perform it.
//
// Granting admin is deliberately gated at admin: a mod must not be able to
// escalate anyone (including themselves) to admin.
var policy = map[Action]UserRole{
	ActionSubmit:            RoleUser,
	ActionReviewSubmissions: RoleMod,
	ActionManageLevels:      RoleMod,
	ActionManageUsers:       RoleMod,
	ActionGrantAdmin:        RoleAdmin,
}

// Allows reports whether a profile with the given role may perform action.
//
// Unknown actions are denied. The check is a pure predicate with no caching;
// callers re-evaluate it on every request against the live profile.
func Allows(role UserRole, action Action) bool {
	minimum, known := policy[action]
	if !known {
		return false
	}
	return role.AtLeast(minimum)
}
