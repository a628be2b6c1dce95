package authentication

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hospital-connect/models"
)

func TestPermissionsForRole(t *testing.T) {
	assert.Contains(t, PermissionsForRole(models.RoleAdmin), "system:manage")
	assert.Contains(t, PermissionsForRole(models.RoleDoctor), "patient:create")
	assert.Contains(t, PermissionsForRole(models.RoleNurse), "admission:update")
	assert.Contains(t, PermissionsForRole(models.RoleUser), "doctor:read")

	assert.NotContains(t, PermissionsForRole(models.RoleUser), "user:read")
	assert.NotContains(t, PermissionsForRole(models.RoleNurse), "doctor:update")
}

func TestUnknownRoleGetsUserSet(t *testing.T) {
	assert.Equal(t, PermissionsForRole(models.RoleUser), PermissionsForRole("janitor"))
	assert.Equal(t, PermissionsForRole(models.RoleUser), PermissionsForRole(""))
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(models.RoleAdmin, "user:update"))
	assert.True(t, HasPermission(models.RoleDoctor, "doctor:read"))
	assert.False(t, HasPermission(models.RoleUser, "doctor:delete"))
	assert.False(t, HasPermission("unknown", "user:read"))
}
