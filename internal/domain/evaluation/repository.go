package evaluation

import (
	"context"
	"time"
)

type EvaluationRepository interface {
	// Create fails with ErrDuplicatePeriod when (employee, period) is taken
	Create(ctx context.Context, e Evaluation) (Evaluation, error)
	CreateKPIs(ctx context.Context, rows []EvaluationKPI) ([]EvaluationKPI, error)

	GetByID(ctx context.Context, id string) (Evaluation, error)
	// GetByIDForUpdate locks the row for the surrounding transaction
	GetByIDForUpdate(ctx context.Context, id string) (Evaluation, error)

	// GetLatestByEmployee returns nil when the employee has never been evaluated
	GetLatestByEmployee(ctx context.Context, employeeID string) (*Evaluation, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Evaluation, error)
	ListKPIs(ctx context.Context, evaluationIDs []string) ([]EvaluationKPI, error)
	ExistsByPeriod(ctx context.Context, employeeID, period string) (bool, error)

	MarkClosedOut(ctx context.Context, id string, at time.Time) error
}
