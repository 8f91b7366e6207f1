package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/momentum-hr/performance-backend-go/internal/domain/attendance"
	"github.com/momentum-hr/performance-backend-go/internal/domain/employee"
	"github.com/momentum-hr/performance-backend-go/internal/domain/evaluation"
	"github.com/momentum-hr/performance-backend-go/internal/domain/metrics"
	"github.com/momentum-hr/performance-backend-go/internal/domain/task"
	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/service/authz"
)

type MetricsServiceImpl struct {
	employees   employee.EmployeeRepository
	attendance  attendance.AttendanceRepository
	tasks       task.TaskRepository
	evaluations evaluation.EvaluationRepository
	authz       *authz.Authorizer
	now         func() time.Time
}

func NewMetricsService(
	employees employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	tasks task.TaskRepository,
	evaluations evaluation.EvaluationRepository,
	authorizer *authz.Authorizer,
) metrics.MetricsService {
	return &MetricsServiceImpl{
		employees:   employees,
		attendance:  attendanceRepo,
		tasks:       tasks,
		evaluations: evaluations,
		authz:       authorizer,
		now:         time.Now,
	}
}

// EmployeeMetrics implements metrics.MetricsService.
func (s *MetricsServiceImpl) EmployeeMetrics(ctx context.Context, employeeID string, asOf time.Time, opts metrics.ComplianceOptions) (metrics.EmployeeMetrics, error) {
	asOf = metrics.Day(asOf)
	start := metrics.FiscalWindowStart(asOf)

	records, err := s.attendance.ListByEmployee(ctx, employeeID, &start, &asOf)
	if err != nil {
		return metrics.EmployeeMetrics{}, fmt.Errorf("failed to load attendance: %w", err)
	}
	tasks, err := s.tasks.ListByEmployees(ctx, []string{employeeID}, task.TaskFilter{})
	if err != nil {
		return metrics.EmployeeMetrics{}, fmt.Errorf("failed to load tasks: %w", err)
	}
	latest, err := s.evaluations.GetLatestByEmployee(ctx, employeeID)
	if err != nil {
		return metrics.EmployeeMetrics{}, fmt.Errorf("failed to load latest evaluation: %w", err)
	}

	return metrics.Compute(metrics.Snapshot{
		EmployeeID:       employeeID,
		Attendance:       records,
		Tasks:            tasks,
		LatestEvaluation: latest,
	}, asOf, opts), nil
}

// PeriodRates implements metrics.MetricsService.
func (s *MetricsServiceImpl) PeriodRates(ctx context.Context, employeeID string, after *time.Time, through time.Time) (metrics.PeriodRates, error) {
	through = metrics.Day(through)
	var from *time.Time
	if after != nil {
		next := metrics.Day(*after).AddDate(0, 0, 1)
		from = &next
	}

	records, err := s.attendance.ListByEmployee(ctx, employeeID, from, &through)
	if err != nil {
		return metrics.PeriodRates{}, fmt.Errorf("failed to load attendance: %w", err)
	}
	tasks, err := s.tasks.ListByEmployees(ctx, []string{employeeID}, task.TaskFilter{})
	if err != nil {
		return metrics.PeriodRates{}, fmt.Errorf("failed to load tasks: %w", err)
	}

	return metrics.ComputePeriod(records, tasks, after, through), nil
}

// ViewEmployeeMetrics implements metrics.MetricsService.
func (s *MetricsServiceImpl) ViewEmployeeMetrics(ctx context.Context, actor user.Actor, employeeID string, query metrics.MetricsQuery) (metrics.EmployeeMetrics, error) {
	if err := query.Validate(); err != nil {
		return metrics.EmployeeMetrics{}, err
	}
	if err := s.authz.CanView(ctx, actor, employeeID); err != nil {
		return metrics.EmployeeMetrics{}, err
	}
	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return metrics.EmployeeMetrics{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return s.EmployeeMetrics(ctx, employeeID, s.now(), query.Options())
}
