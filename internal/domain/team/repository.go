package team

import "context"

type TeamRepository interface {
	// Upsert inserts the pair or reactivates a previously removed row.
	Upsert(ctx context.Context, managerID, employeeID string) (TeamMember, error)
	Deactivate(ctx context.Context, managerID, employeeID string) error
	GetActive(ctx context.Context, managerID, employeeID string) (*TeamMember, error)
	IsActiveMember(ctx context.Context, managerID, employeeID string) (bool, error)
	// ListActive returns the active roster in insertion order.
	ListActive(ctx context.Context, managerID string) ([]TeamMember, error)
	// SearchAvailable lists employee-role employees not on the manager's active roster.
	SearchAvailable(ctx context.Context, managerID, query string, limit int) ([]AvailableEmployee, error)
}
