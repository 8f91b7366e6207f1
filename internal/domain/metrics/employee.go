package metrics

import (
	"time"

	"github.com/momentum-hr/performance-backend-go/internal/domain/attendance"
	"github.com/momentum-hr/performance-backend-go/internal/domain/evaluation"
	"github.com/momentum-hr/performance-backend-go/internal/domain/task"
)

// Snapshot is everything the engine needs about one employee.
type Snapshot struct {
	EmployeeID       string
	Attendance       []attendance.AttendanceRecord
	Tasks            []task.Task
	LatestEvaluation *evaluation.Evaluation
}

type EmployeeMetrics struct {
	EmployeeID     string    `json:"employee_id"`
	AsOf           time.Time `json:"as_of"`
	AttendanceRate Rate      `json:"attendance_rate"`
	ComplianceRate Rate      `json:"compliance_rate"`
	// SnapshotCompliance is the rate frozen on the latest evaluation, or the
	// real-time rate when SnapshotFrozen is false
	SnapshotCompliance float64 `json:"snapshot_compliance"`
	SnapshotFrozen     bool    `json:"snapshot_frozen"`
	BacklogCount       int     `json:"backlog_count"`
	PerformanceScore   float64 `json:"performance_score"`
	Status             Status  `json:"status"`
}

// Compute derives all metrics for s as of the given day. Performance uses the
// real-time compliance rate.
func Compute(s Snapshot, asOf time.Time, opts ComplianceOptions) EmployeeMetrics {
	var lastEvaluation *time.Time
	if s.LatestEvaluation != nil {
		d := s.LatestEvaluation.EvaluationDate
		lastEvaluation = &d
	}

	att := AttendanceRate(s.Attendance, asOf)
	comp := ComplianceRate(s.Tasks, asOf, lastEvaluation, opts)
	snapshot, frozen := SnapshotComplianceRate(s.LatestEvaluation, comp)
	score := PerformanceScore(att.Value, comp.Value)

	return EmployeeMetrics{
		EmployeeID:         s.EmployeeID,
		AsOf:               Day(asOf),
		AttendanceRate:     att,
		ComplianceRate:     comp,
		SnapshotCompliance: snapshot,
		SnapshotFrozen:     frozen,
		BacklogCount:       BacklogCount(s.Tasks),
		PerformanceScore:   score,
		Status:             Classify(score),
	}
}

// Zero is the degraded result reported when an employee's records cannot be read.
func Zero(employeeID string, asOf time.Time) EmployeeMetrics {
	return EmployeeMetrics{
		EmployeeID: employeeID,
		AsOf:       Day(asOf),
		Status:     Classify(0),
	}
}

// PeriodRates are the figures frozen onto a new evaluation.
type PeriodRates struct {
	Attendance         Rate
	Compliance         Rate
	OverallPerformance float64
}

// ComputePeriod evaluates the window (after, through].
func ComputePeriod(records []attendance.AttendanceRecord, tasks []task.Task, after *time.Time, through time.Time) PeriodRates {
	att := PeriodAttendanceRate(records, after, through)
	comp := PeriodComplianceRate(tasks, after, through)
	return PeriodRates{
		Attendance:         att,
		Compliance:         comp,
		OverallPerformance: PerformanceScore(att.Value, comp.Value),
	}
}
