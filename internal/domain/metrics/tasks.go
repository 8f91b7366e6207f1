package metrics

import (
	"time"

	"github.com/momentum-hr/performance-backend-go/internal/domain/evaluation"
	"github.com/momentum-hr/performance-backend-go/internal/domain/task"
)

// BacklogCount counts open work: not started or in progress, and not accepted.
func BacklogCount(tasks []task.Task) int {
	var n int
	for _, t := range tasks {
		if t.ReviewStatus == task.ReviewAccepted {
			continue
		}
		if t.Status == task.StatusNotStarted || t.Status == task.StatusInProgress {
			n++
		}
	}
	return n
}

type ComplianceOptions struct {
	// PeriodDays keeps tasks created within the trailing N days of asOf
	PeriodDays int
	// SinceLastEvaluation keeps tasks created after the latest evaluation date
	SinceLastEvaluation bool
}

// ComplianceRate is the real-time share of accepted tasks among those not yet
// folded into an evaluation. lastEvaluation is only read when
// opts.SinceLastEvaluation is set. Both narrowings apply when both are given.
func ComplianceRate(tasks []task.Task, asOf time.Time, lastEvaluation *time.Time, opts ComplianceOptions) Rate {
	var after *time.Time
	if opts.PeriodDays > 0 {
		cutoff := Day(asOf).AddDate(0, 0, -opts.PeriodDays)
		after = &cutoff
	}
	if opts.SinceLastEvaluation && lastEvaluation != nil {
		last := Day(*lastEvaluation)
		if after == nil || last.After(*after) {
			after = &last
		}
	}

	var accepted, total int
	for _, t := range tasks {
		if t.IsEvaluated {
			continue
		}
		if !inWindow(t.CreatedDate, after, asOf) {
			continue
		}
		total++
		if t.IsAccepted() {
			accepted++
		}
	}
	return percent(accepted, total)
}

// PeriodComplianceRate is the share of accepted tasks created in (after, asOf].
func PeriodComplianceRate(tasks []task.Task, after *time.Time, asOf time.Time) Rate {
	var accepted, total int
	for _, t := range tasks {
		if !inWindow(t.CreatedDate, after, asOf) {
			continue
		}
		total++
		if t.IsAccepted() {
			accepted++
		}
	}
	return percent(accepted, total)
}

// SnapshotComplianceRate reads the rate frozen on the latest evaluation. When
// there is none, fallback is returned and frozen is false.
func SnapshotComplianceRate(latest *evaluation.Evaluation, fallback Rate) (value float64, frozen bool) {
	if latest != nil && latest.ComplianceRate != nil {
		return *latest.ComplianceRate, true
	}
	return fallback.Value, false
}
