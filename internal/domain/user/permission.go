package user

type Permission string

const (
	// Shift registry, patterns, groups and matrices
	PermissionShiftView   Permission = "shift.view"
	PermissionShiftManage Permission = "shift.manage"
	PermissionShiftSync   Permission = "shift.sync"

	// Attendance
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionShiftView,
		PermissionShiftManage,
		PermissionShiftSync,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
	},
	RoleManager: {
		PermissionShiftView,
		PermissionShiftManage,
		PermissionShiftSync,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
	},
	RoleEmployee: {
		PermissionShiftView,
		PermissionAttendanceViewOwn,
	},
	RolePending: {
		// Pending role has no permissions
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
