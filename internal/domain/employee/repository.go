package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, employee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	// GetByIDForUpdate locks the row for the surrounding transaction
	GetByIDForUpdate(ctx context.Context, id string) (Employee, error)
	GetByIDs(ctx context.Context, ids []string) ([]Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
