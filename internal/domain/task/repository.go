package task

import (
	"context"
	"time"
)

type TaskRepository interface {
	Create(ctx context.Context, task Task) (Task, error)
	GetByID(ctx context.Context, id string) (Task, error)

	// GetByIDForUpdate locks the row for the surrounding transaction
	GetByIDForUpdate(ctx context.Context, id string) (Task, error)

	// Update persists t if its Version still matches the stored row and bumps
	// the version. A mismatch returns ErrConcurrentUpdate.
	Update(ctx context.Context, t Task) (Task, error)

	ListByEmployees(ctx context.Context, employeeIDs []string, filter TaskFilter) ([]Task, error)

	// MarkEvaluatedThrough flags every task created on or before the cutoff
	MarkEvaluatedThrough(ctx context.Context, employeeID string, cutoff time.Time) (int64, error)
}
