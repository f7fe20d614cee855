package rbac

import "go-attendance/internal/user"

const (
	ResourceProfile          = "profile"
	ResourceDomains          = "domains"
	ResourceEmployees        = "employees"
	ResourceAttendance       = "attendance"
	ResourceAttendanceReport = "attendance_report"
	ResourceHRAttendance     = "hr_attendance"
	ResourceLeaves           = "leaves"
	ResourceLeaveApprovals   = "leave_approvals"
	ResourceHolidays         = "holidays"
	ResourceDashboard        = "dashboard"

	ActionRead   = "read"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionAll    = "*"
)

type Permission struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// hr_admin inherits everything an employee may do.
var inheritance = [][2]string{
	{user.RoleHRAdmin, user.RoleEmployee},
}

var rolePermissions = map[string][]Permission{
	user.RoleEmployee: {
		{ResourceProfile, ActionRead},
		{ResourceProfile, ActionUpdate},
		{ResourceDomains, ActionRead},
		{ResourceAttendance, ActionCreate},
		{ResourceAttendance, ActionRead},
		{ResourceLeaves, ActionCreate},
		{ResourceLeaves, ActionRead},
		{ResourceHolidays, ActionRead},
	},
	user.RoleHRAdmin: {
		{ResourceEmployees, ActionAll},
		{ResourceAttendanceReport, ActionRead},
		{ResourceHRAttendance, ActionAll},
		{ResourceLeaveApprovals, ActionAll},
		{ResourceHolidays, ActionAll},
		{ResourceDashboard, ActionRead},
	},
}
