package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentum-hr/performance-backend-go/internal/domain/attendance"
	"github.com/momentum-hr/performance-backend-go/internal/domain/evaluation"
	"github.com/momentum-hr/performance-backend-go/internal/domain/task"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func record(d time.Time, status attendance.Status) attendance.AttendanceRecord {
	return attendance.AttendanceRecord{EmployeeID: "e1", Date: d, Status: status}
}

func backlogTask(status task.Status, review task.ReviewStatus, created time.Time) task.Task {
	return task.Task{
		EmployeeID:   "e1",
		Status:       status,
		ReviewStatus: review,
		CreatedDate:  created,
	}
}

func TestFiscalWindowStart(t *testing.T) {
	cases := []struct {
		asOf time.Time
		want time.Time
	}{
		{date(2025, time.September, 30), date(2024, time.October, 1)},
		{date(2025, time.October, 1), date(2025, time.October, 1)},
		{date(2025, time.December, 31), date(2025, time.October, 1)},
		{date(2026, time.January, 1), date(2025, time.October, 1)},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FiscalWindowStart(c.asOf), c.asOf.Format("2006-01-02"))
	}
}

func TestAttendanceRate_FirstWeekOfFiscalYear(t *testing.T) {
	records := []attendance.AttendanceRecord{
		record(date(2025, time.October, 1), attendance.StatusPresent),
		record(date(2025, time.October, 2), attendance.StatusPresent),
		record(date(2025, time.October, 3), attendance.StatusAbsent),
		record(date(2025, time.October, 4), attendance.StatusPresent),
		record(date(2025, time.October, 5), attendance.StatusPresent),
	}

	rate := AttendanceRate(records, date(2025, time.October, 5))

	assert.Equal(t, 80.0, rate.Value)
	assert.Equal(t, 4, rate.Numerator)
	assert.Equal(t, 5, rate.Denominator)
}

func TestAttendanceRate_NoRecordsIsZero(t *testing.T) {
	rate := AttendanceRate(nil, date(2025, time.October, 5))
	assert.Equal(t, 0.0, rate.Value)
	assert.True(t, rate.IsEmpty())

	// Only records outside the window
	old := []attendance.AttendanceRecord{
		record(date(2025, time.September, 30), attendance.StatusPresent),
		record(date(2025, time.October, 6), attendance.StatusPresent),
	}
	rate = AttendanceRate(old, date(2025, time.October, 5))
	assert.Equal(t, 0.0, rate.Value)
	assert.True(t, rate.IsEmpty())
}

func TestAttendanceRate_SkipsCountedAndLateIsNotPresent(t *testing.T) {
	counted := record(date(2025, time.October, 1), attendance.StatusAbsent)
	counted.IsCounted = true
	records := []attendance.AttendanceRecord{
		counted,
		record(date(2025, time.October, 2), attendance.StatusPresent),
		record(date(2025, time.October, 3), attendance.StatusLate),
		record(date(2025, time.October, 6), attendance.StatusPresent),
	}

	rate := AttendanceRate(records, date(2025, time.October, 10))

	assert.Equal(t, 66.67, rate.Value)
	assert.Equal(t, 3, rate.Denominator)
}

func TestPeriodAttendanceRate_ExcludesRecordsUpToPreviousEvaluation(t *testing.T) {
	records := []attendance.AttendanceRecord{
		record(date(2025, time.March, 1), attendance.StatusAbsent),
		record(date(2025, time.March, 31), attendance.StatusAbsent),
		record(date(2025, time.April, 1), attendance.StatusPresent),
		record(date(2025, time.April, 2), attendance.StatusPresent),
		record(date(2025, time.July, 1), attendance.StatusAbsent),
	}
	first := date(2025, time.March, 31)

	second := PeriodAttendanceRate(records, &first, date(2025, time.June, 30))
	assert.Equal(t, 100.0, second.Value)
	assert.Equal(t, 2, second.Denominator)

	unbounded := PeriodAttendanceRate(records, nil, first)
	assert.Equal(t, 0.0, unbounded.Value)
	assert.Equal(t, 2, unbounded.Denominator)
}

func TestBacklogAndCompliance_ThreeTasks(t *testing.T) {
	created := date(2025, time.October, 2)
	tasks := []task.Task{
		backlogTask(task.StatusCompleted, task.ReviewAccepted, created),
		backlogTask(task.StatusInProgress, task.ReviewPending, created),
		backlogTask(task.StatusNotStarted, task.ReviewPending, created),
	}
	asOf := date(2025, time.October, 5)

	assert.Equal(t, 2, BacklogCount(tasks))

	rate := ComplianceRate(tasks, asOf, nil, ComplianceOptions{})
	assert.Equal(t, 33.33, rate.Value)
	assert.Equal(t, 1, rate.Numerator)
	assert.Equal(t, 3, rate.Denominator)

	again := ComplianceRate(tasks, asOf, nil, ComplianceOptions{})
	assert.Equal(t, rate, again)
}

func TestBacklogCount_ExcludesAcceptedReviewRegardlessOfStatus(t *testing.T) {
	created := date(2025, time.October, 2)
	tasks := []task.Task{
		backlogTask(task.StatusInProgress, task.ReviewAccepted, created),
		backlogTask(task.StatusNotStarted, task.ReviewAccepted, created),
		backlogTask(task.StatusCompleted, task.ReviewPending, created),
		backlogTask(task.StatusCancelled, task.ReviewPending, created),
		backlogTask(task.StatusAccepted, task.ReviewAccepted, created),
	}
	assert.Equal(t, 0, BacklogCount(tasks))
}

func TestComplianceRate_Narrowing(t *testing.T) {
	asOf := date(2025, time.November, 30)
	evaluated := backlogTask(task.StatusAccepted, task.ReviewAccepted, date(2025, time.October, 1))
	evaluated.IsEvaluated = true
	tasks := []task.Task{
		evaluated,
		backlogTask(task.StatusAccepted, task.ReviewAccepted, date(2025, time.October, 10)),
		backlogTask(task.StatusInProgress, task.ReviewPending, date(2025, time.November, 10)),
		backlogTask(task.StatusCompleted, task.ReviewAccepted, date(2025, time.November, 25)),
	}

	all := ComplianceRate(tasks, asOf, nil, ComplianceOptions{})
	assert.Equal(t, 66.67, all.Value)
	assert.Equal(t, 3, all.Denominator)

	trailing := ComplianceRate(tasks, asOf, nil, ComplianceOptions{PeriodDays: 30})
	assert.Equal(t, 50.0, trailing.Value)
	assert.Equal(t, 2, trailing.Denominator)

	last := date(2025, time.November, 20)
	since := ComplianceRate(tasks, asOf, &last, ComplianceOptions{SinceLastEvaluation: true})
	assert.Equal(t, 100.0, since.Value)
	assert.Equal(t, 1, since.Denominator)

	noEvaluation := ComplianceRate(tasks, asOf, nil, ComplianceOptions{SinceLastEvaluation: true})
	assert.Equal(t, all, noEvaluation)
}

func TestComplianceRate_EmptyIsZero(t *testing.T) {
	rate := ComplianceRate(nil, date(2025, time.October, 5), nil, ComplianceOptions{})
	assert.Equal(t, Rate{}, rate)
}

func TestPeriodComplianceRate_IgnoresEvaluatedFlag(t *testing.T) {
	first := date(2025, time.March, 31)
	old := backlogTask(task.StatusAccepted, task.ReviewAccepted, date(2025, time.March, 15))
	old.IsEvaluated = true
	flagged := backlogTask(task.StatusAccepted, task.ReviewAccepted, date(2025, time.April, 15))
	flagged.IsEvaluated = true
	tasks := []task.Task{
		old,
		flagged,
		backlogTask(task.StatusInProgress, task.ReviewPending, date(2025, time.May, 1)),
	}

	rate := PeriodComplianceRate(tasks, &first, date(2025, time.June, 30))
	assert.Equal(t, 50.0, rate.Value)
	assert.Equal(t, 2, rate.Denominator)
}

func TestSnapshotComplianceRate(t *testing.T) {
	fallback := Rate{Value: 42.5, Numerator: 17, Denominator: 40}

	value, frozen := SnapshotComplianceRate(nil, fallback)
	assert.Equal(t, 42.5, value)
	assert.False(t, frozen)

	value, frozen = SnapshotComplianceRate(&evaluation.Evaluation{}, fallback)
	assert.Equal(t, 42.5, value)
	assert.False(t, frozen)

	stored := 91.25
	value, frozen = SnapshotComplianceRate(&evaluation.Evaluation{ComplianceRate: &stored}, fallback)
	assert.Equal(t, 91.25, value)
	assert.True(t, frozen)
}

func TestPerformanceScore(t *testing.T) {
	assert.Equal(t, 52.0, PerformanceScore(80, 33.33))
	assert.Equal(t, 100.0, PerformanceScore(100, 100))
	assert.Equal(t, 0.0, PerformanceScore(0, 0))
	assert.Equal(t, 26.67, PerformanceScore(66.67, 0))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		score float64
		want  Status
	}{
		{100, StatusExcellent},
		{80, StatusExcellent},
		{79.99, StatusGood},
		{70, StatusGood},
		{69.99, StatusNeedsImprovement},
		{60, StatusNeedsImprovement},
		{59.99, StatusPoor},
		{0, StatusPoor},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(c.score), "score %v", c.score)
	}
}

func TestKPIAchievement(t *testing.T) {
	assert.Equal(t, 0.0, KPIAchievement(nil))

	got := KPIAchievement([]KPIScore{
		{Value: 50, Target: 100},
		{Value: 120, Target: 100},
		{Value: 10, Target: 0},
	})
	assert.Equal(t, 75.0, got)

	assert.Equal(t, 33.33, KPIAchievement([]KPIScore{{Value: 1, Target: 3}}))
}

func TestCompute(t *testing.T) {
	asOf := date(2025, time.October, 5)
	stored := 12.5
	snap := Snapshot{
		EmployeeID: "e1",
		Attendance: []attendance.AttendanceRecord{
			record(date(2025, time.October, 1), attendance.StatusPresent),
			record(date(2025, time.October, 2), attendance.StatusPresent),
			record(date(2025, time.October, 3), attendance.StatusAbsent),
			record(date(2025, time.October, 4), attendance.StatusPresent),
			record(date(2025, time.October, 5), attendance.StatusPresent),
		},
		Tasks: []task.Task{
			backlogTask(task.StatusCompleted, task.ReviewAccepted, date(2025, time.October, 2)),
			backlogTask(task.StatusInProgress, task.ReviewPending, date(2025, time.October, 2)),
			backlogTask(task.StatusNotStarted, task.ReviewPending, date(2025, time.October, 2)),
		},
		LatestEvaluation: &evaluation.Evaluation{
			EvaluationDate: date(2025, time.September, 30),
			ComplianceRate: &stored,
		},
	}

	m := Compute(snap, asOf, ComplianceOptions{})

	require.Equal(t, "e1", m.EmployeeID)
	assert.Equal(t, 80.0, m.AttendanceRate.Value)
	assert.Equal(t, 33.33, m.ComplianceRate.Value)
	assert.Equal(t, 2, m.BacklogCount)
	assert.Equal(t, 52.0, m.PerformanceScore)
	assert.Equal(t, StatusPoor, m.Status)
	assert.Equal(t, 12.5, m.SnapshotCompliance)
	assert.True(t, m.SnapshotFrozen)
}

func TestCompute_RepeatableOnUnchangedRecords(t *testing.T) {
	asOf := date(2025, time.November, 30)
	last := date(2025, time.October, 31)
	evaluated := backlogTask(task.StatusAccepted, task.ReviewAccepted, date(2025, time.October, 1))
	evaluated.IsEvaluated = true
	snap := Snapshot{
		EmployeeID: "e1",
		Attendance: []attendance.AttendanceRecord{
			record(date(2025, time.November, 3), attendance.StatusPresent),
			record(date(2025, time.November, 4), attendance.StatusLate),
		},
		Tasks: []task.Task{
			evaluated,
			backlogTask(task.StatusAccepted, task.ReviewAccepted, date(2025, time.November, 10)),
			backlogTask(task.StatusInProgress, task.ReviewPending, date(2025, time.November, 12)),
		},
		LatestEvaluation: &evaluation.Evaluation{EvaluationDate: last},
	}
	tasksBefore := append([]task.Task(nil), snap.Tasks...)
	attendanceBefore := append([]attendance.AttendanceRecord(nil), snap.Attendance...)

	for _, opts := range []ComplianceOptions{{}, {PeriodDays: 30}, {SinceLastEvaluation: true}} {
		first := ComplianceRate(snap.Tasks, asOf, &last, opts)
		second := ComplianceRate(snap.Tasks, asOf, &last, opts)
		assert.Equal(t, first, second, "%+v", opts)

		assert.Equal(t, Compute(snap, asOf, opts), Compute(snap, asOf, opts), "%+v", opts)
	}

	assert.Equal(t, tasksBefore, snap.Tasks)
	assert.Equal(t, attendanceBefore, snap.Attendance)
}

func TestComputePeriod(t *testing.T) {
	first := date(2025, time.March, 31)
	records := []attendance.AttendanceRecord{
		record(date(2025, time.March, 30), attendance.StatusAbsent),
		record(date(2025, time.April, 1), attendance.StatusPresent),
	}
	tasks := []task.Task{
		backlogTask(task.StatusInProgress, task.ReviewPending, date(2025, time.March, 1)),
		backlogTask(task.StatusAccepted, task.ReviewAccepted, date(2025, time.April, 3)),
	}

	p := ComputePeriod(records, tasks, &first, date(2025, time.June, 30))

	assert.Equal(t, 100.0, p.Attendance.Value)
	assert.Equal(t, 100.0, p.Compliance.Value)
	assert.Equal(t, 100.0, p.OverallPerformance)
}

func TestZero(t *testing.T) {
	m := Zero("e9", date(2025, time.October, 5))
	assert.Equal(t, "e9", m.EmployeeID)
	assert.True(t, m.AttendanceRate.IsEmpty())
	assert.Equal(t, StatusPoor, m.Status)
}
