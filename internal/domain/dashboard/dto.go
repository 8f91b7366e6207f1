package dashboard

import (
	"github.com/momentum-hr/performance-backend-go/internal/domain/metrics"
)

// ========== FILTER ==========

// TeamFilter narrows the detail list after aggregation. Empty fields match everything.
type TeamFilter struct {
	Department string `json:"department,omitempty"` // exact match
	Status     string `json:"status,omitempty"`     // display label, e.g. "Needs Improvement"
}

func (f *TeamFilter) Validate() error {
	if f.Status == "" {
		return nil
	}
	_, err := ParseStatusLabel(f.Status)
	return err
}

// ========== TEAM DASHBOARD ==========

// TeamSummary is computed over the whole roster, before any filter.
type TeamSummary struct {
	EmployeeCount             int     `json:"employee_count"`
	AverageAttendance         float64 `json:"average_attendance"`
	AverageCompliance         float64 `json:"average_compliance"`
	TotalBacklog              int     `json:"total_backlog"`
	EmployeesNeedingAttention int     `json:"employees_needing_attention"` // backlog above 2
	NeedsAttention            bool    `json:"needs_attention"`             // team backlog above 15
}

// EmployeeDetail is one row of the team table.
type EmployeeDetail struct {
	EmployeeID       string         `json:"employee_id"`
	FullName         string         `json:"full_name"`
	Email            string         `json:"email"`
	Department       string         `json:"department"`
	Position         *string        `json:"position,omitempty"`
	AttendanceRate   float64        `json:"attendance_rate"`
	ComplianceRate   float64        `json:"compliance_rate"`
	BacklogCount     int            `json:"backlog_count"`
	PerformanceScore float64        `json:"performance_score"`
	Status           metrics.Status `json:"status"`
	StatusLabel      string         `json:"status_label"`
	Degraded         bool           `json:"degraded,omitempty"` // metrics could not be read
}

type TeamDashboardResponse struct {
	AsOf      string           `json:"as_of"` // Format: "YYYY-MM-DD"
	Summary   TeamSummary      `json:"summary"`
	Employees []EmployeeDetail `json:"employees"`
}

// ========== MY DASHBOARD ==========

type MyDashboardResponse struct {
	EmployeeID         string         `json:"employee_id"`
	FullName           string         `json:"full_name"`
	AsOf               string         `json:"as_of"`
	AttendanceRate     metrics.Rate   `json:"attendance_rate"`
	ComplianceRate     metrics.Rate   `json:"compliance_rate"`
	SnapshotCompliance float64        `json:"snapshot_compliance"`
	BacklogCount       int            `json:"backlog_count"`
	PerformanceScore   float64        `json:"performance_score"`
	Status             metrics.Status `json:"status"`
	StatusLabel        string         `json:"status_label"`
}
