package evaluation

import "time"

// Evaluation is a periodic review of one employee. The rate fields are
// computed once at creation and never recomputed.
type Evaluation struct {
	ID                 string
	EmployeeID         string
	CreatedBy          string
	EvaluationDate     time.Time
	Period             string
	Notes              *string
	ComplianceRate     *float64
	AttendanceRate     *float64
	OverallPerformance *float64
	// WindowStart is the previous evaluation date; nil for the first evaluation
	WindowStart *time.Time
	ClosedOutAt *time.Time
	CreatedAt   time.Time
}

func (e Evaluation) IsClosedOut() bool {
	return e.ClosedOutAt != nil
}

// EvaluationKPI is one KPI score attached to an evaluation.
type EvaluationKPI struct {
	ID           string
	EvaluationID string
	KPIID        string
	Value        float64
	Target       float64
	Notes        *string

	// Join
	KPIName *string
}
