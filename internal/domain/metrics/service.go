package metrics

import (
	"context"
	"time"

	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
)

// MetricsService loads record snapshots and runs the engine over them.
type MetricsService interface {
	// EmployeeMetrics computes live metrics. Store faults are returned, never zeroed.
	EmployeeMetrics(ctx context.Context, employeeID string, asOf time.Time, opts ComplianceOptions) (EmployeeMetrics, error)

	// PeriodRates computes the figures to freeze on an evaluation covering (after, through].
	PeriodRates(ctx context.Context, employeeID string, after *time.Time, through time.Time) (PeriodRates, error)

	// ViewEmployeeMetrics is EmployeeMetrics as of today, for a caller allowed to see the employee.
	ViewEmployeeMetrics(ctx context.Context, actor user.Actor, employeeID string, query MetricsQuery) (EmployeeMetrics, error)
}
