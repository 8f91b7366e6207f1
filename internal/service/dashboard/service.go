package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/momentum-hr/performance-backend-go/internal/domain/dashboard"
	"github.com/momentum-hr/performance-backend-go/internal/domain/employee"
	"github.com/momentum-hr/performance-backend-go/internal/domain/metrics"
	"github.com/momentum-hr/performance-backend-go/internal/domain/team"
	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/validator"
	"github.com/momentum-hr/performance-backend-go/internal/service/authz"
)

// DefaultConcurrency bounds how many employees are computed at once.
const DefaultConcurrency = 8

type Options struct {
	Concurrency int
	// EmployeeTimeout bounds one employee's computation; zero means no bound
	EmployeeTimeout time.Duration
}

type DashboardServiceImpl struct {
	teams     team.TeamRepository
	employees employee.EmployeeRepository
	metrics   metrics.MetricsService
	opts      Options
	now       func() time.Time
}

func NewDashboardService(teams team.TeamRepository, employees employee.EmployeeRepository, metricsSvc metrics.MetricsService, opts Options) dashboard.DashboardService {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	return &DashboardServiceImpl{
		teams:     teams,
		employees: employees,
		metrics:   metricsSvc,
		opts:      opts,
		now:       time.Now,
	}
}

// TeamDashboard implements dashboard.DashboardService.
// Every roster employee is computed concurrently; one whose records cannot be
// read is reported with zero metrics and Degraded set instead of failing the page.
func (s *DashboardServiceImpl) TeamDashboard(ctx context.Context, actor user.Actor, filter dashboard.TeamFilter) (*dashboard.TeamDashboardResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if err := authz.RequirePermission(actor, user.PermissionTeamDashboard); err != nil {
		return nil, err
	}

	asOf := metrics.Day(s.now())

	members, err := s.teams.ListActive(ctx, actor.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team: %w", err)
	}
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.EmployeeID)
	}

	employees, err := s.employees.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load team employees: %w", err)
	}
	byID := make(map[string]employee.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	// Roster order is kept so ties sort stably.
	rows := make([]dashboard.Row, 0, len(ids))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			rows = append(rows, dashboard.Row{Employee: e})
		}
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)
	for i := range rows {
		g.Go(func() error {
			employeeID := rows[i].Employee.ID
			m, err := s.employeeMetrics(gCtx, employeeID, asOf)
			if err != nil {
				slog.Warn("team dashboard: metrics degraded",
					"manager_id", actor.AccountID,
					"employee_id", employeeID,
					"error", err,
				)
				rows[i].Metrics = metrics.Zero(employeeID, asOf)
				rows[i].Degraded = true
				return nil
			}
			rows[i].Metrics = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	details, err := dashboard.ApplyFilter(dashboard.Details(rows), filter)
	if err != nil {
		return nil, err
	}

	return &dashboard.TeamDashboardResponse{
		AsOf:      asOf.Format(validator.DateLayout),
		Summary:   dashboard.Summarize(rows),
		Employees: details,
	}, nil
}

func (s *DashboardServiceImpl) employeeMetrics(ctx context.Context, employeeID string, asOf time.Time) (metrics.EmployeeMetrics, error) {
	if s.opts.EmployeeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.EmployeeTimeout)
		defer cancel()
	}
	return s.metrics.EmployeeMetrics(ctx, employeeID, asOf, metrics.ComplianceOptions{})
}

// MyDashboard implements dashboard.DashboardService.
func (s *DashboardServiceImpl) MyDashboard(ctx context.Context, actor user.Actor) (*dashboard.MyDashboardResponse, error) {
	if err := authz.RequirePermission(actor, user.PermissionMetricsViewOwn); err != nil {
		return nil, err
	}

	e, err := s.employees.GetByID(ctx, actor.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	asOf := metrics.Day(s.now())
	m, err := s.metrics.EmployeeMetrics(ctx, e.ID, asOf, metrics.ComplianceOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to compute metrics: %w", err)
	}

	return &dashboard.MyDashboardResponse{
		EmployeeID:         e.ID,
		FullName:           e.FullName(),
		AsOf:               asOf.Format(validator.DateLayout),
		AttendanceRate:     m.AttendanceRate,
		ComplianceRate:     m.ComplianceRate,
		SnapshotCompliance: m.SnapshotCompliance,
		BacklogCount:       m.BacklogCount,
		PerformanceScore:   m.PerformanceScore,
		Status:             m.Status,
		StatusLabel:        m.Status.Label(),
	}, nil
}
