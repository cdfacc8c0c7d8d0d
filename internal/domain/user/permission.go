package user

type Permission string

const (
	// Roster Management
	PermissionRosterView    Permission = "roster.view"
	PermissionRosterManage  Permission = "roster.manage"
	PermissionRosterPublish Permission = "roster.publish"

	// Shift Management
	PermissionShiftViewOwn Permission = "shift.view_own"
	PermissionShiftViewAll Permission = "shift.view_all"
	PermissionShiftManage  Permission = "shift.manage"
	PermissionShiftAssign  Permission = "shift.assign"

	// Attendance Management
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceCreate  Permission = "attendance.create"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceApprove Permission = "attendance.approve"
	PermissionAttendanceDelete  Permission = "attendance.delete"

	// Payroll Management
	PermissionPayrollViewOwn  Permission = "payroll.view_own"
	PermissionPayrollViewAll  Permission = "payroll.view_all"
	PermissionPayrollCreate   Permission = "payroll.create"
	PermissionPayrollGenerate Permission = "payroll.generate"
	PermissionPayrollUpdate   Permission = "payroll.update"
	PermissionPayrollApprove  Permission = "payroll.approve"
	PermissionPayrollDelete   Permission = "payroll.delete"
)

// RolePermissions maps roles to their permissions. Every state transition
// in the scheduling and payroll lifecycles is gated through this table
// instead of ad hoc role comparisons in handlers.
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionRosterView,
		PermissionRosterManage,
		PermissionRosterPublish,
		PermissionShiftViewOwn,
		PermissionShiftViewAll,
		PermissionShiftManage,
		PermissionShiftAssign,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionAttendanceApprove,
		PermissionAttendanceDelete,
		PermissionPayrollViewOwn,
		PermissionPayrollViewAll,
		PermissionPayrollCreate,
		PermissionPayrollGenerate,
		PermissionPayrollUpdate,
		PermissionPayrollApprove,
		PermissionPayrollDelete,
	},
	RoleManager: {
		PermissionRosterView,
		PermissionRosterManage,
		PermissionRosterPublish,
		PermissionShiftViewOwn,
		PermissionShiftViewAll,
		PermissionShiftManage,
		PermissionShiftAssign,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionAttendanceApprove,
		PermissionPayrollViewOwn,
		PermissionPayrollViewAll,
		PermissionPayrollApprove,
	},
	RoleAccountant: {
		PermissionRosterView,
		PermissionShiftViewOwn,
		PermissionShiftViewAll,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionPayrollViewOwn,
		PermissionPayrollViewAll,
		PermissionPayrollCreate,
		PermissionPayrollGenerate,
		PermissionPayrollUpdate,
	},
	RoleEmployee: {
		PermissionRosterView,
		PermissionShiftViewOwn,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionPayrollViewOwn,
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
