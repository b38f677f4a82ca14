package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleOwner, PermissionShiftSync))
	assert.True(t, HasPermission(RoleManager, PermissionShiftManage))
	assert.True(t, HasPermission(RoleEmployee, PermissionShiftView))
	assert.False(t, HasPermission(RoleEmployee, PermissionShiftManage))
	assert.False(t, HasPermission(RoleEmployee, PermissionShiftSync))
	assert.False(t, HasPermission(RolePending, PermissionShiftView))
	assert.False(t, HasPermission(Role("ghost"), PermissionShiftView))
}

func TestRoleIsManager(t *testing.T) {
	assert.True(t, RoleOwner.IsManager())
	assert.True(t, RoleManager.IsManager())
	assert.False(t, RoleEmployee.IsManager())
}
