package evaluation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentum-hr/performance-backend-go/internal/domain/attendance"
	"github.com/momentum-hr/performance-backend-go/internal/domain/employee"
	"github.com/momentum-hr/performance-backend-go/internal/domain/evaluation"
	"github.com/momentum-hr/performance-backend-go/internal/domain/kpi"
	domainmetrics "github.com/momentum-hr/performance-backend-go/internal/domain/metrics"
	"github.com/momentum-hr/performance-backend-go/internal/domain/task"
	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/service/authz"
	metricsservice "github.com/momentum-hr/performance-backend-go/internal/service/metrics"
	"github.com/momentum-hr/performance-backend-go/internal/testutil"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	store   *testutil.Store
	svc     *EvaluationServiceImpl
	metrics domainmetrics.MetricsService
	sup     user.Actor
	emp     user.Actor
	admin   user.Actor
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := testutil.NewStore()
	authorizer := authz.NewAuthorizer(store.Teams)
	metricsSvc := metricsservice.NewMetricsService(store.Employees, store.Attendance, store.Tasks, store.Evaluations, authorizer)

	f := fixture{
		store:   store,
		metrics: metricsSvc,
		sup:     store.SeedAccount("Sam", "Engineering", user.RoleSupervisor),
		emp:     store.SeedAccount("Eve", "Engineering", user.RoleEmployee),
		admin:   store.SeedAccount("Ada", "HR", user.RoleAdmin),
	}
	store.AddToTeam(f.sup, f.emp)

	svc := NewEvaluationService(Deps{
		Tx:          store.Tx,
		Evaluations: store.Evaluations,
		Employees:   store.Employees,
		KPIs:        store.KPIs,
		Attendance:  store.Attendance,
		Tasks:       store.Tasks,
		Metrics:     metricsSvc,
		Authorizer:  authorizer,
	}).(*EvaluationServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, time.July, 1, 8, 0, 0, 0, time.UTC) }
	f.svc = svc
	return f
}

func (f fixture) attend(t *testing.T, d time.Time, s attendance.Status) {
	t.Helper()
	_, err := f.store.Attendance.Create(context.Background(), attendance.AttendanceRecord{EmployeeID: f.emp.EmployeeID, Date: d, Status: s})
	require.NoError(t, err)
}

func (f fixture) task(t *testing.T, created time.Time, accepted bool) {
	t.Helper()
	tk := task.Task{
		EmployeeID:   f.emp.EmployeeID,
		Status:       task.StatusInProgress,
		ReviewStatus: task.ReviewPending,
		CreatedDate:  created,
		DueDate:      created.AddDate(0, 0, 7),
		Priority:     task.PriorityLow,
	}
	if accepted {
		tk.Status = task.StatusAccepted
		tk.ReviewStatus = task.ReviewAccepted
	}
	_, err := f.store.Tasks.Create(context.Background(), tk)
	require.NoError(t, err)
}

func (f fixture) create(t *testing.T, actor user.Actor, date, period string) evaluation.EvaluationResponse {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), actor, evaluation.CreateEvaluationRequest{
		EmployeeID:     f.emp.EmployeeID,
		EvaluationDate: date,
		Period:         period,
	})
	require.NoError(t, err)
	return resp
}

func TestCreate_FreezesRatesOverWindow(t *testing.T) {
	f := newFixture(t)
	f.attend(t, day(time.March, 30), attendance.StatusAbsent)
	f.attend(t, day(time.March, 31), attendance.StatusPresent)
	f.task(t, day(time.March, 15), false)
	f.task(t, day(time.March, 20), true)

	first := f.create(t, f.sup, "2025-03-31", "2025-Q1")
	require.NotNil(t, first.AttendanceRate)
	assert.Equal(t, 50.0, *first.AttendanceRate)
	assert.Equal(t, 50.0, *first.ComplianceRate)
	assert.Equal(t, 50.0, *first.OverallPerformance)
	assert.Nil(t, first.WindowStart)

	f.attend(t, day(time.April, 1), attendance.StatusPresent)
	f.attend(t, day(time.April, 2), attendance.StatusPresent)
	f.task(t, day(time.April, 3), true)

	second := f.create(t, f.sup, "2025-06-30", "2025-Q2")
	assert.Equal(t, 100.0, *second.AttendanceRate)
	assert.Equal(t, 100.0, *second.ComplianceRate)
	assert.Equal(t, 100.0, *second.OverallPerformance)
	require.NotNil(t, second.WindowStart)
	assert.Equal(t, "2025-03-31", *second.WindowStart)

	// Snapshot fields stay put when new records arrive later
	f.attend(t, day(time.June, 30), attendance.StatusAbsent)
	got, err := f.svc.Get(context.Background(), f.sup, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, *got.AttendanceRate)
}

func TestCreate_Ordering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, f.sup, "2025-03-31", "2025-Q1")

	_, err := f.svc.Create(ctx, f.sup, evaluation.CreateEvaluationRequest{EmployeeID: f.emp.EmployeeID, EvaluationDate: "2025-03-31", Period: "2025-Q1b"})
	assert.ErrorIs(t, err, evaluation.ErrEvaluationOutOfOrder)

	_, err = f.svc.Create(ctx, f.sup, evaluation.CreateEvaluationRequest{EmployeeID: f.emp.EmployeeID, EvaluationDate: "2025-02-01", Period: "2025-Q0"})
	assert.ErrorIs(t, err, evaluation.ErrEvaluationOutOfOrder)

	_, err = f.svc.Create(ctx, f.sup, evaluation.CreateEvaluationRequest{EmployeeID: f.emp.EmployeeID, EvaluationDate: "2025-06-30", Period: "2025-Q1"})
	assert.ErrorIs(t, err, evaluation.ErrDuplicatePeriod)
}

func TestCreate_RejectsFutureDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.sup, evaluation.CreateEvaluationRequest{EmployeeID: f.emp.EmployeeID, EvaluationDate: "2025-12-31", Period: "2025-H2"})
	assert.ErrorIs(t, err, evaluation.ErrFutureDate)

	// today is allowed, and a rejected future date does not block later evaluations
	f.create(t, f.sup, "2025-06-30", "2025-Q2")
	f.create(t, f.sup, "2025-07-01", "2025-07")

	list, err := f.svc.ListByEmployee(ctx, f.sup, f.emp.EmployeeID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCreate_LocksEmployeeRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.create(t, f.sup, "2025-03-31", "2025-Q1")
	assert.Equal(t, []string{f.emp.EmployeeID}, f.store.Employees.Locked)

	_, err := f.svc.Create(ctx, f.admin, evaluation.CreateEvaluationRequest{EmployeeID: testutil.NewID(), EvaluationDate: "2025-03-31", Period: "2025-Q1"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCreate_Authorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := evaluation.CreateEvaluationRequest{EmployeeID: f.emp.EmployeeID, EvaluationDate: "2025-03-31", Period: "2025-Q1"}

	_, err := f.svc.Create(ctx, f.emp, req)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	other := f.store.SeedAccount("Olga", "Engineering", user.RoleSupervisor)
	_, err = f.svc.Create(ctx, other, req)
	assert.ErrorIs(t, err, user.ErrNotTeamManager)

	resp, err := f.svc.Create(ctx, f.admin, req)
	require.NoError(t, err)
	assert.Equal(t, f.admin.AccountID, resp.CreatedBy)
}

func TestCreate_KPIs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quality, err := f.store.KPIs.Create(ctx, kpi.KPI{Name: "Quality", Type: "percent", TargetValue: 80, IsActive: true})
	require.NoError(t, err)
	velocity, err := f.store.KPIs.Create(ctx, kpi.KPI{Name: "Velocity", Type: "count", TargetValue: 10, IsActive: true})
	require.NoError(t, err)
	retired, err := f.store.KPIs.Create(ctx, kpi.KPI{Name: "Legacy", Type: "count", TargetValue: 5, IsActive: false})
	require.NoError(t, err)

	customTarget := 20.0
	resp, err := f.svc.Create(ctx, f.sup, evaluation.CreateEvaluationRequest{
		EmployeeID:     f.emp.EmployeeID,
		EvaluationDate: "2025-03-31",
		Period:         "2025-Q1",
		KPIs: []evaluation.KPIScoreInput{
			{KPIID: quality.ID, Value: 100},
			{KPIID: velocity.ID, Value: 10, Target: &customTarget},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.KPIs, 2)
	assert.Equal(t, 80.0, resp.KPIs[0].Target)
	assert.Equal(t, "Quality", resp.KPIs[0].KPIName)
	assert.Equal(t, 20.0, resp.KPIs[1].Target)
	assert.Equal(t, 75.0, resp.KPIAchievement)

	_, err = f.svc.Create(ctx, f.sup, evaluation.CreateEvaluationRequest{
		EmployeeID:     f.emp.EmployeeID,
		EvaluationDate: "2025-06-30",
		Period:         "2025-Q2",
		KPIs:           []evaluation.KPIScoreInput{{KPIID: retired.ID, Value: 1}},
	})
	assert.ErrorIs(t, err, kpi.ErrKPINotFound)
}

func TestCloseOut_ResetsLiveMetricsAndIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.attend(t, day(time.March, 30), attendance.StatusAbsent)
	f.attend(t, day(time.March, 31), attendance.StatusPresent)
	f.attend(t, day(time.April, 1), attendance.StatusPresent)
	f.task(t, day(time.March, 15), false)
	f.task(t, day(time.April, 2), true)

	eval := f.create(t, f.sup, "2025-03-31", "2025-Q1")

	first, err := f.svc.CloseOut(ctx, f.sup, eval.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), first.AttendanceMarked)
	assert.Equal(t, int64(1), first.TasksMarked)

	live, err := f.metrics.EmployeeMetrics(ctx, f.emp.EmployeeID, day(time.April, 5), domainmetrics.ComplianceOptions{})
	require.NoError(t, err)
	assert.Equal(t, 100.0, live.AttendanceRate.Value)
	assert.Equal(t, 1, live.AttendanceRate.Denominator)
	assert.Equal(t, 100.0, live.ComplianceRate.Value)
	assert.Equal(t, 1, live.ComplianceRate.Denominator)

	again, err := f.svc.CloseOut(ctx, f.sup, eval.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ClosedOutAt, again.ClosedOutAt)
	assert.Zero(t, again.AttendanceMarked)
	assert.Zero(t, again.TasksMarked)
}

func TestCloseOut_Guards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eval := f.create(t, f.sup, "2025-03-31", "2025-Q1")

	_, err := f.svc.CloseOut(ctx, f.emp, eval.ID)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = f.svc.CloseOut(ctx, f.admin, testutil.NewID())
	assert.ErrorIs(t, err, evaluation.ErrEvaluationNotFound)
}

func TestListByEmployee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, f.sup, "2025-03-31", "2025-Q1")
	f.create(t, f.sup, "2025-06-30", "2025-Q2")

	list, err := f.svc.ListByEmployee(ctx, f.emp, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2025-Q2", list[0].Period)

	peer := f.store.SeedAccount("Pat", "Engineering", user.RoleEmployee)
	_, err = f.svc.ListByEmployee(ctx, peer, f.emp.EmployeeID)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}
