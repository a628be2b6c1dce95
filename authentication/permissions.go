package authentication

import "hospital-connect/models"

// rolePermissions maps each role to its capability strings. Derived, never
// persisted; an unknown role falls back to the "user" set.
var rolePermissions = map[string][]string{
	models.RoleAdmin: {
		"user:create", "user:read", "user:update", "user:delete",
		"doctor:create", "doctor:read", "doctor:update", "doctor:delete",
		"patient:create", "patient:read", "patient:update", "patient:delete",
		"room:create", "room:read", "room:update", "room:delete",
		"admission:create", "admission:read", "admission:update", "admission:delete",
		"system:manage",
	},
	models.RoleDoctor: {
		"doctor:read", "doctor:update",
		"patient:create", "patient:read", "patient:update",
		"admission:create", "admission:read", "admission:update",
		"room:read",
	},
	models.RoleNurse: {
		"patient:read", "patient:update",
		"admission:read", "admission:update",
		"room:read",
	},
	models.RoleUser: {
		"patient:read",
		"doctor:read",
	},
}

// PermissionsForRole returns the capability set for a role.
func PermissionsForRole(role string) []string {
	if perms, ok := rolePermissions[role]; ok {
		return perms
	}
	return rolePermissions[models.RoleUser]
}

// HasPermission reports whether the role grants the capability.
func HasPermission(role, permission string) bool {
	for _, p := range PermissionsForRole(role) {
		if p == permission {
			return true
		}
	}
	return false
}
