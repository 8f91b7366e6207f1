package employee

import (
	"context"

	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
)

type EmployeeService interface {
	// CreateWithAccount inserts the employee and its account atomically (admin only)
	CreateWithAccount(ctx context.Context, actor user.Actor, req CreateEmployeeRequest) (CreateEmployeeResponse, error)

	// GetEmployee returns an employee visible to the actor
	GetEmployee(ctx context.Context, actor user.Actor, id string) (EmployeeResponse, error)
}
