package team

import "time"

// TeamMember links a managing account to an employee. Removal is a soft delete;
// at most one active row exists per (manager, employee) pair.
type TeamMember struct {
	ID         string
	ManagerID  string
	EmployeeID string
	IsActive   bool
	AddedDate  time.Time

	// Join
	EmployeeName  *string
	Department    *string
	Position      *string
	EmployeeEmail *string
}
