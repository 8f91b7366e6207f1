package evaluation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/momentum-hr/performance-backend-go/internal/domain/attendance"
	"github.com/momentum-hr/performance-backend-go/internal/domain/employee"
	"github.com/momentum-hr/performance-backend-go/internal/domain/evaluation"
	"github.com/momentum-hr/performance-backend-go/internal/domain/kpi"
	"github.com/momentum-hr/performance-backend-go/internal/domain/metrics"
	"github.com/momentum-hr/performance-backend-go/internal/domain/task"
	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/database"
	"github.com/momentum-hr/performance-backend-go/internal/service/authz"
)

type EvaluationServiceImpl struct {
	tx database.Transactor
	evaluation.EvaluationRepository
	employees  employee.EmployeeRepository
	kpis       kpi.KPIRepository
	attendance attendance.AttendanceRepository
	tasks      task.TaskRepository
	metrics    metrics.MetricsService
	authz      *authz.Authorizer
	now        func() time.Time
}

type Deps struct {
	Tx          database.Transactor
	Evaluations evaluation.EvaluationRepository
	Employees   employee.EmployeeRepository
	KPIs        kpi.KPIRepository
	Attendance  attendance.AttendanceRepository
	Tasks       task.TaskRepository
	Metrics     metrics.MetricsService
	Authorizer  *authz.Authorizer
}

func NewEvaluationService(d Deps) evaluation.EvaluationService {
	return &EvaluationServiceImpl{
		tx:                   d.Tx,
		EvaluationRepository: d.Evaluations,
		employees:            d.Employees,
		kpis:                 d.KPIs,
		attendance:           d.Attendance,
		tasks:                d.Tasks,
		metrics:              d.Metrics,
		authz:                d.Authorizer,
		now:                  time.Now,
	}
}

// authorize lets admins act on anyone and supervisors on their active team.
func (s *EvaluationServiceImpl) authorize(ctx context.Context, actor user.Actor, employeeID string, p user.Permission) error {
	if err := authz.RequirePermission(actor, p); err != nil {
		return err
	}
	if actor.IsAdmin() {
		return nil
	}
	return s.authz.RequireTeamManager(ctx, actor, employeeID, p)
}

// Create implements evaluation.EvaluationService.
func (s *EvaluationServiceImpl) Create(ctx context.Context, actor user.Actor, req evaluation.CreateEvaluationRequest) (evaluation.EvaluationResponse, error) {
	if err := req.Validate(); err != nil {
		return evaluation.EvaluationResponse{}, err
	}
	if req.ParsedEvaluationDate.After(metrics.Day(s.now())) {
		return evaluation.EvaluationResponse{}, evaluation.ErrFutureDate
	}
	if err := s.authorize(ctx, actor, req.EmployeeID, user.PermissionEvaluationCreate); err != nil {
		return evaluation.EvaluationResponse{}, err
	}

	var (
		created evaluation.Evaluation
		rows    []evaluation.EvaluationKPI
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// serializes creates per employee so the ordering check below holds
		if _, err := s.employees.GetByIDForUpdate(ctx, req.EmployeeID); err != nil {
			return fmt.Errorf("failed to lock employee: %w", err)
		}

		latest, err := s.EvaluationRepository.GetLatestByEmployee(ctx, req.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to get latest evaluation: %w", err)
		}
		var windowStart *time.Time
		if latest != nil {
			if !req.ParsedEvaluationDate.After(latest.EvaluationDate) {
				return evaluation.ErrEvaluationOutOfOrder
			}
			prior := latest.EvaluationDate
			windowStart = &prior
		}

		period := strings.TrimSpace(req.Period)
		exists, err := s.EvaluationRepository.ExistsByPeriod(ctx, req.EmployeeID, period)
		if err != nil {
			return fmt.Errorf("failed to check evaluation period: %w", err)
		}
		if exists {
			return evaluation.ErrDuplicatePeriod
		}

		catalog, err := s.resolveKPIs(ctx, req.KPIs)
		if err != nil {
			return err
		}

		rates, err := s.metrics.PeriodRates(ctx, req.EmployeeID, windowStart, req.ParsedEvaluationDate)
		if err != nil {
			return fmt.Errorf("failed to compute period rates: %w", err)
		}
		attendanceRate := rates.Attendance.Value
		complianceRate := rates.Compliance.Value
		overall := rates.OverallPerformance

		created, err = s.EvaluationRepository.Create(ctx, evaluation.Evaluation{
			EmployeeID:         req.EmployeeID,
			CreatedBy:          actor.AccountID,
			EvaluationDate:     req.ParsedEvaluationDate,
			Period:             period,
			Notes:              req.Notes,
			AttendanceRate:     &attendanceRate,
			ComplianceRate:     &complianceRate,
			OverallPerformance: &overall,
			WindowStart:        windowStart,
		})
		if err != nil {
			return fmt.Errorf("failed to create evaluation: %w", err)
		}

		if len(req.KPIs) == 0 {
			return nil
		}
		pending := make([]evaluation.EvaluationKPI, 0, len(req.KPIs))
		for _, in := range req.KPIs {
			k := catalog[in.KPIID]
			target := k.TargetValue
			if in.Target != nil {
				target = *in.Target
			}
			pending = append(pending, evaluation.EvaluationKPI{
				EvaluationID: created.ID,
				KPIID:        in.KPIID,
				Value:        in.Value,
				Target:       target,
				Notes:        in.Notes,
				KPIName:      &k.Name,
			})
		}
		rows, err = s.EvaluationRepository.CreateKPIs(ctx, pending)
		if err != nil {
			return fmt.Errorf("failed to create evaluation kpis: %w", err)
		}
		return nil
	})
	if err != nil {
		return evaluation.EvaluationResponse{}, err
	}

	return evaluation.ToResponse(created, rows, achievement(rows)), nil
}

// resolveKPIs loads the requested catalog entries. Unknown and inactive KPIs are rejected.
func (s *EvaluationServiceImpl) resolveKPIs(ctx context.Context, inputs []evaluation.KPIScoreInput) (map[string]kpi.KPI, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.KPIID)
	}
	found, err := s.kpis.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get kpis: %w", err)
	}
	byID := make(map[string]kpi.KPI, len(found))
	for _, k := range found {
		if k.IsActive {
			byID[k.ID] = k
		}
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("%w: %s", kpi.ErrKPINotFound, id)
		}
	}
	return byID, nil
}

// CloseOut implements evaluation.EvaluationService.
func (s *EvaluationServiceImpl) CloseOut(ctx context.Context, actor user.Actor, evaluationID string) (evaluation.CloseOutResponse, error) {
	if err := authz.RequirePermission(actor, user.PermissionEvaluationCloseOut); err != nil {
		return evaluation.CloseOutResponse{}, err
	}

	var resp evaluation.CloseOutResponse
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		e, err := s.EvaluationRepository.GetByIDForUpdate(ctx, evaluationID)
		if err != nil {
			return fmt.Errorf("failed to get evaluation: %w", err)
		}
		if err := s.authorize(ctx, actor, e.EmployeeID, user.PermissionEvaluationCloseOut); err != nil {
			return err
		}

		attendanceMarked, err := s.attendance.MarkCountedThrough(ctx, e.EmployeeID, e.EvaluationDate)
		if err != nil {
			return fmt.Errorf("failed to mark attendance counted: %w", err)
		}
		tasksMarked, err := s.tasks.MarkEvaluatedThrough(ctx, e.EmployeeID, e.EvaluationDate)
		if err != nil {
			return fmt.Errorf("failed to mark tasks evaluated: %w", err)
		}

		closedAt := s.now()
		if e.ClosedOutAt != nil {
			closedAt = *e.ClosedOutAt
		} else if err := s.EvaluationRepository.MarkClosedOut(ctx, e.ID, closedAt); err != nil {
			return fmt.Errorf("failed to stamp close out: %w", err)
		}

		resp = evaluation.CloseOutResponse{
			EvaluationID:     e.ID,
			ClosedOutAt:      closedAt.Format(time.RFC3339),
			AttendanceMarked: attendanceMarked,
			TasksMarked:      tasksMarked,
		}
		return nil
	})
	if err != nil {
		return evaluation.CloseOutResponse{}, err
	}
	return resp, nil
}

// Get implements evaluation.EvaluationService.
func (s *EvaluationServiceImpl) Get(ctx context.Context, actor user.Actor, evaluationID string) (evaluation.EvaluationResponse, error) {
	e, err := s.EvaluationRepository.GetByID(ctx, evaluationID)
	if err != nil {
		return evaluation.EvaluationResponse{}, fmt.Errorf("failed to get evaluation: %w", err)
	}
	if err := s.authz.CanView(ctx, actor, e.EmployeeID); err != nil {
		return evaluation.EvaluationResponse{}, err
	}

	rows, err := s.EvaluationRepository.ListKPIs(ctx, []string{e.ID})
	if err != nil {
		return evaluation.EvaluationResponse{}, fmt.Errorf("failed to get evaluation kpis: %w", err)
	}
	return evaluation.ToResponse(e, rows, achievement(rows)), nil
}

// ListByEmployee implements evaluation.EvaluationService.
func (s *EvaluationServiceImpl) ListByEmployee(ctx context.Context, actor user.Actor, employeeID string) ([]evaluation.EvaluationResponse, error) {
	if employeeID == "" {
		employeeID = actor.EmployeeID
	}
	if err := s.authz.CanView(ctx, actor, employeeID); err != nil {
		return nil, err
	}

	list, err := s.EvaluationRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	if len(list) == 0 {
		return []evaluation.EvaluationResponse{}, nil
	}

	ids := make([]string, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.ID)
	}
	rows, err := s.EvaluationRepository.ListKPIs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluation kpis: %w", err)
	}
	byEvaluation := make(map[string][]evaluation.EvaluationKPI, len(list))
	for _, r := range rows {
		byEvaluation[r.EvaluationID] = append(byEvaluation[r.EvaluationID], r)
	}

	out := make([]evaluation.EvaluationResponse, 0, len(list))
	for _, e := range list {
		kpis := byEvaluation[e.ID]
		out = append(out, evaluation.ToResponse(e, kpis, achievement(kpis)))
	}
	return out, nil
}

func achievement(rows []evaluation.EvaluationKPI) float64 {
	scores := make([]metrics.KPIScore, 0, len(rows))
	for _, r := range rows {
		scores = append(scores, metrics.KPIScore{Value: r.Value, Target: r.Target})
	}
	return metrics.KPIAchievement(scores)
}
