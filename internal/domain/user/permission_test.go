package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	t.Run("admin holds every permission", func(t *testing.T) {
		for _, perms := range RolePermissions {
			for _, p := range perms {
				assert.True(t, HasPermission(RoleAdmin, p), "admin missing %s", p)
			}
		}
	})

	t.Run("manager schedules but does not run payroll", func(t *testing.T) {
		assert.True(t, HasPermission(RoleManager, PermissionRosterPublish))
		assert.True(t, HasPermission(RoleManager, PermissionShiftAssign))
		assert.True(t, HasPermission(RoleManager, PermissionAttendanceApprove))
		assert.True(t, HasPermission(RoleManager, PermissionPayrollApprove))
		assert.False(t, HasPermission(RoleManager, PermissionPayrollGenerate))
		assert.False(t, HasPermission(RoleManager, PermissionPayrollDelete))
	})

	t.Run("accountant runs payroll but does not schedule", func(t *testing.T) {
		assert.True(t, HasPermission(RoleAccountant, PermissionPayrollCreate))
		assert.True(t, HasPermission(RoleAccountant, PermissionPayrollGenerate))
		assert.False(t, HasPermission(RoleAccountant, PermissionPayrollApprove))
		assert.False(t, HasPermission(RoleAccountant, PermissionRosterManage))
		assert.False(t, HasPermission(RoleAccountant, PermissionShiftManage))
	})

	t.Run("employee only touches own records", func(t *testing.T) {
		assert.True(t, HasPermission(RoleEmployee, PermissionShiftViewOwn))
		assert.True(t, HasPermission(RoleEmployee, PermissionAttendanceCreate))
		assert.True(t, HasPermission(RoleEmployee, PermissionPayrollViewOwn))
		assert.False(t, HasPermission(RoleEmployee, PermissionShiftViewAll))
		assert.False(t, HasPermission(RoleEmployee, PermissionAttendanceApprove))
		assert.False(t, HasPermission(RoleEmployee, PermissionRosterManage))
	})

	t.Run("unknown role holds nothing", func(t *testing.T) {
		assert.False(t, HasPermission(Role("intern"), PermissionRosterView))
	})
}
