package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentum-hr/performance-backend-go/internal/domain/attendance"
	"github.com/momentum-hr/performance-backend-go/internal/domain/employee"
	"github.com/momentum-hr/performance-backend-go/internal/domain/evaluation"
	"github.com/momentum-hr/performance-backend-go/internal/domain/metrics"
	"github.com/momentum-hr/performance-backend-go/internal/domain/task"
	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/service/authz"
	"github.com/momentum-hr/performance-backend-go/internal/testutil"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
}

func newService(store *testutil.Store, now time.Time) *MetricsServiceImpl {
	svc := NewMetricsService(store.Employees, store.Attendance, store.Tasks, store.Evaluations, authz.NewAuthorizer(store.Teams)).(*MetricsServiceImpl)
	svc.now = func() time.Time { return now }
	return svc
}

func seedAttendance(t *testing.T, store *testutil.Store, employeeID string, statuses map[time.Time]attendance.Status) {
	t.Helper()
	for d, s := range statuses {
		_, err := store.Attendance.Create(context.Background(), attendance.AttendanceRecord{EmployeeID: employeeID, Date: d, Status: s})
		require.NoError(t, err)
	}
}

func seedTask(t *testing.T, store *testutil.Store, employeeID string, status task.Status, review task.ReviewStatus, created time.Time) {
	t.Helper()
	_, err := store.Tasks.Create(context.Background(), task.Task{
		EmployeeID:   employeeID,
		Status:       status,
		ReviewStatus: review,
		Priority:     task.PriorityMedium,
		CreatedDate:  created,
		DueDate:      created.AddDate(0, 0, 14),
	})
	require.NoError(t, err)
}

func TestEmployeeMetrics(t *testing.T) {
	store := testutil.NewStore()
	emp := store.SeedAccount("Eve", "Engineering", user.RoleEmployee)
	seedAttendance(t, store, emp.EmployeeID, map[time.Time]attendance.Status{
		day(time.September, 30): attendance.StatusAbsent,
		day(time.October, 1):    attendance.StatusPresent,
		day(time.October, 2):    attendance.StatusPresent,
		day(time.October, 3):    attendance.StatusAbsent,
		day(time.October, 4):    attendance.StatusPresent,
		day(time.October, 5):    attendance.StatusPresent,
	})
	seedTask(t, store, emp.EmployeeID, task.StatusCompleted, task.ReviewAccepted, day(time.October, 1))
	seedTask(t, store, emp.EmployeeID, task.StatusInProgress, task.ReviewPending, day(time.October, 2))
	seedTask(t, store, emp.EmployeeID, task.StatusNotStarted, task.ReviewPending, day(time.October, 3))

	svc := newService(store, day(time.October, 5))
	m, err := svc.EmployeeMetrics(context.Background(), emp.EmployeeID, day(time.October, 5), metrics.ComplianceOptions{})
	require.NoError(t, err)

	assert.Equal(t, 80.0, m.AttendanceRate.Value)
	assert.Equal(t, 33.33, m.ComplianceRate.Value)
	assert.Equal(t, 2, m.BacklogCount)
	assert.Equal(t, 52.0, m.PerformanceScore)
	assert.False(t, m.SnapshotFrozen)
	assert.Equal(t, 33.33, m.SnapshotCompliance)
}

func TestEmployeeMetrics_RepeatableWithoutWrites(t *testing.T) {
	store := testutil.NewStore()
	emp := store.SeedAccount("Eve", "Engineering", user.RoleEmployee)
	seedAttendance(t, store, emp.EmployeeID, map[time.Time]attendance.Status{
		day(time.October, 1): attendance.StatusPresent,
		day(time.October, 2): attendance.StatusAbsent,
	})
	seedTask(t, store, emp.EmployeeID, task.StatusCompleted, task.ReviewAccepted, day(time.October, 1))
	seedTask(t, store, emp.EmployeeID, task.StatusInProgress, task.ReviewPending, day(time.October, 2))

	svc := newService(store, day(time.October, 5))
	ctx := context.Background()
	first, err := svc.EmployeeMetrics(ctx, emp.EmployeeID, day(time.October, 5), metrics.ComplianceOptions{})
	require.NoError(t, err)
	second, err := svc.EmployeeMetrics(ctx, emp.EmployeeID, day(time.October, 5), metrics.ComplianceOptions{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 50.0, second.ComplianceRate.Value)
}

func TestEmployeeMetrics_NoRecords(t *testing.T) {
	store := testutil.NewStore()
	emp := store.SeedAccount("Eve", "Engineering", user.RoleEmployee)
	svc := newService(store, day(time.October, 5))

	m, err := svc.EmployeeMetrics(context.Background(), emp.EmployeeID, day(time.October, 5), metrics.ComplianceOptions{})
	require.NoError(t, err)

	assert.Equal(t, 0.0, m.AttendanceRate.Value)
	assert.True(t, m.AttendanceRate.IsEmpty())
	assert.Equal(t, 0.0, m.ComplianceRate.Value)
	assert.Equal(t, metrics.StatusPoor, m.Status)
}

func TestEmployeeMetrics_ReturnsStoreFaults(t *testing.T) {
	store := testutil.NewStore()
	emp := store.SeedAccount("Eve", "Engineering", user.RoleEmployee)
	boom := errors.New("connection reset")
	store.Attendance.Fail[emp.EmployeeID] = boom
	svc := newService(store, day(time.October, 5))

	_, err := svc.EmployeeMetrics(context.Background(), emp.EmployeeID, day(time.October, 5), metrics.ComplianceOptions{})
	assert.ErrorIs(t, err, boom)
}

func TestEmployeeMetrics_SnapshotFromLatestEvaluation(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore()
	emp := store.SeedAccount("Eve", "Engineering", user.RoleEmployee)
	frozen := 72.5
	_, err := store.Evaluations.Create(ctx, evaluation.Evaluation{
		EmployeeID:     emp.EmployeeID,
		EvaluationDate: day(time.September, 30),
		Period:         "2024-25",
		ComplianceRate: &frozen,
	})
	require.NoError(t, err)
	seedTask(t, store, emp.EmployeeID, task.StatusAccepted, task.ReviewAccepted, day(time.September, 1))
	seedTask(t, store, emp.EmployeeID, task.StatusInProgress, task.ReviewPending, day(time.October, 2))

	svc := newService(store, day(time.October, 5))
	m, err := svc.EmployeeMetrics(ctx, emp.EmployeeID, day(time.October, 5), metrics.ComplianceOptions{SinceLastEvaluation: true})
	require.NoError(t, err)

	assert.True(t, m.SnapshotFrozen)
	assert.Equal(t, 72.5, m.SnapshotCompliance)
	assert.Equal(t, 0.0, m.ComplianceRate.Value)
	assert.Equal(t, 1, m.ComplianceRate.Denominator)
}

func TestPeriodRates_SecondEvaluationWindow(t *testing.T) {
	store := testutil.NewStore()
	emp := store.SeedAccount("Eve", "Engineering", user.RoleEmployee)
	seedAttendance(t, store, emp.EmployeeID, map[time.Time]attendance.Status{
		day(time.March, 30): attendance.StatusAbsent,
		day(time.March, 31): attendance.StatusAbsent,
		day(time.April, 1):  attendance.StatusPresent,
		day(time.May, 2):    attendance.StatusPresent,
		day(time.May, 3):    attendance.StatusAbsent,
		day(time.May, 4):    attendance.StatusPresent,
	})
	seedTask(t, store, emp.EmployeeID, task.StatusInProgress, task.ReviewPending, day(time.March, 31))
	seedTask(t, store, emp.EmployeeID, task.StatusAccepted, task.ReviewAccepted, day(time.April, 10))

	first := day(time.March, 31)
	svc := newService(store, day(time.June, 30))
	rates, err := svc.PeriodRates(context.Background(), emp.EmployeeID, &first, day(time.June, 30))
	require.NoError(t, err)

	assert.Equal(t, 75.0, rates.Attendance.Value)
	assert.Equal(t, 4, rates.Attendance.Denominator)
	assert.Equal(t, 100.0, rates.Compliance.Value)
	assert.Equal(t, 90.0, rates.OverallPerformance)
}

func TestViewEmployeeMetrics(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore()
	sup := store.SeedAccount("Sam", "Engineering", user.RoleSupervisor)
	emp := store.SeedAccount("Eve", "Engineering", user.RoleEmployee)
	peer := store.SeedAccount("Pat", "Engineering", user.RoleEmployee)
	store.AddToTeam(sup, emp)
	svc := newService(store, day(time.October, 5))

	_, err := svc.ViewEmployeeMetrics(ctx, sup, emp.EmployeeID, metrics.MetricsQuery{})
	assert.NoError(t, err)

	_, err = svc.ViewEmployeeMetrics(ctx, emp, emp.EmployeeID, metrics.MetricsQuery{PeriodDays: 30})
	assert.NoError(t, err)

	_, err = svc.ViewEmployeeMetrics(ctx, peer, emp.EmployeeID, metrics.MetricsQuery{})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	admin := store.SeedAccount("Ada", "HR", user.RoleAdmin)
	_, err = svc.ViewEmployeeMetrics(ctx, admin, testutil.NewID(), metrics.MetricsQuery{})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
