package user

type Permission string

const (
	// Shift management
	PermissionShiftView   Permission = "shift.view"
	PermissionShiftManage Permission = "shift.manage"

	// Staffing
	PermissionStaffingAssign Permission = "staffing.assign"
	PermissionStaffingClock  Permission = "staffing.clock"
	PermissionStaffingEnd    Permission = "staffing.end"

	// Timesheets
	PermissionTimesheetView           Permission = "timesheet.view"
	PermissionTimesheetCreate         Permission = "timesheet.create"
	PermissionTimesheetApproveCompany Permission = "timesheet.approve_company"
	PermissionTimesheetApproveManager Permission = "timesheet.approve_manager"
	PermissionTimesheetReject         Permission = "timesheet.reject"

	// Reports
	PermissionReportsView Permission = "reports.view"

	// Administration
	PermissionAdminMigrate Permission = "admin.migrate"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionShiftView,
		PermissionShiftManage,
		PermissionStaffingAssign,
		PermissionStaffingClock,
		PermissionStaffingEnd,
		PermissionTimesheetView,
		PermissionTimesheetCreate,
		PermissionTimesheetApproveCompany,
		PermissionTimesheetApproveManager,
		PermissionTimesheetReject,
		PermissionReportsView,
		PermissionAdminMigrate,
	},
	RoleStaff: {
		PermissionShiftView,
		PermissionShiftManage,
		PermissionStaffingAssign,
		PermissionStaffingClock,
		PermissionStaffingEnd,
		PermissionTimesheetView,
		PermissionTimesheetCreate,
		PermissionTimesheetApproveManager,
		PermissionTimesheetReject,
		PermissionReportsView,
	},
	RoleCrewChief: {
		// Crew chiefs run the clock for their shifts and see their own timesheets
		PermissionShiftView,
		PermissionStaffingClock,
		PermissionStaffingEnd,
		PermissionTimesheetView,
		PermissionReportsView,
	},
	RoleEmployee: {
		// Workers clock themselves in and out; no timesheet surface
		PermissionShiftView,
		PermissionStaffingClock,
	},
	RoleCompanyUser: {
		PermissionShiftView,
		PermissionTimesheetView,
		PermissionTimesheetApproveCompany,
		PermissionTimesheetReject,
		PermissionReportsView,
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
