package user

type Permission string

const (
	// Self service
	PermissionTaskUpdateOwn       Permission = "task.update_own"
	PermissionAttendanceRecordOwn Permission = "attendance.record_own"
	PermissionMetricsViewOwn      Permission = "metrics.view_own"

	// Team management
	PermissionTeamManage    Permission = "team.manage"
	PermissionTaskAssign    Permission = "task.assign"
	PermissionTaskReview    Permission = "task.review"
	PermissionTeamDashboard Permission = "dashboard.team"

	// Evaluations
	PermissionEvaluationCreate   Permission = "evaluation.create"
	PermissionEvaluationCloseOut Permission = "evaluation.close_out"

	// Administration
	PermissionAttendanceRecordAny Permission = "attendance.record_any"
	PermissionKPIManage           Permission = "kpi.manage"
	PermissionAccountManage       Permission = "account.manage"
	PermissionEmployeeViewAll     Permission = "employee.view_all"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionMetricsViewOwn,
		PermissionEvaluationCreate,
		PermissionEvaluationCloseOut,
		PermissionAttendanceRecordAny,
		PermissionKPIManage,
		PermissionAccountManage,
		PermissionEmployeeViewAll,
	},
	RoleSupervisor: {
		PermissionTaskUpdateOwn,
		PermissionAttendanceRecordOwn,
		PermissionMetricsViewOwn,
		PermissionTeamManage,
		PermissionTaskAssign,
		PermissionTaskReview,
		PermissionTeamDashboard,
		PermissionEvaluationCreate,
		PermissionEvaluationCloseOut,
	},
	RoleEmployee: {
		PermissionTaskUpdateOwn,
		PermissionAttendanceRecordOwn,
		PermissionMetricsViewOwn,
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
