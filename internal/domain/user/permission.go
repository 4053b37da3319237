package user

import "slices"

type Permission string

const (
	// Daily activity reports
	PermissionReportViewOwn Permission = "report.view_own"
	PermissionReportEditOwn Permission = "report.edit_own"
	PermissionReportViewAll Permission = "report.view_all"
	PermissionReportReview  Permission = "report.review"
	PermissionReportExport  Permission = "report.export"

	// Holidays
	PermissionHolidayView   Permission = "holiday.view"
	PermissionHolidayManage Permission = "holiday.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionReportViewOwn,
		PermissionReportEditOwn,
		PermissionReportViewAll,
		PermissionReportReview,
		PermissionReportExport,
		PermissionHolidayView,
		PermissionHolidayManage,
	},
	RoleManager: {
		PermissionReportViewOwn,
		PermissionReportEditOwn,
		PermissionReportViewAll,
		PermissionReportReview,
		PermissionReportExport,
		PermissionHolidayView,
		PermissionHolidayManage,
	},
	RoleEmployee: {
		PermissionReportViewOwn,
		PermissionReportEditOwn,
		PermissionReportExport,
		PermissionHolidayView,
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
	return slices.Contains(permissions, permission)
}
