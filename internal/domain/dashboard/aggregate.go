package dashboard

import (
	"sort"

	"github.com/momentum-hr/performance-backend-go/internal/domain/employee"
	"github.com/momentum-hr/performance-backend-go/internal/domain/metrics"
)

const (
	attentionBacklogPerEmployee = 2
	attentionBacklogPerTeam     = 15
)

// Row pairs a roster employee with its computed metrics.
type Row struct {
	Employee employee.Employee
	Metrics  metrics.EmployeeMetrics
	Degraded bool
}

// ParseStatusLabel maps a display label to its status. Matching is case-sensitive.
func ParseStatusLabel(label string) (metrics.Status, error) {
	for _, s := range []metrics.Status{
		metrics.StatusExcellent,
		metrics.StatusGood,
		metrics.StatusNeedsImprovement,
		metrics.StatusPoor,
	} {
		if s.Label() == label {
			return s, nil
		}
	}
	return "", ErrInvalidStatusFilter
}

// Summarize reduces rows to team totals. An empty team yields all zeros.
func Summarize(rows []Row) TeamSummary {
	summary := TeamSummary{EmployeeCount: len(rows)}
	if len(rows) == 0 {
		return summary
	}

	var attendance, compliance float64
	for _, r := range rows {
		attendance += r.Metrics.AttendanceRate.Value
		compliance += r.Metrics.ComplianceRate.Value
		summary.TotalBacklog += r.Metrics.BacklogCount
		if r.Metrics.BacklogCount > attentionBacklogPerEmployee {
			summary.EmployeesNeedingAttention++
		}
	}

	n := float64(len(rows))
	summary.AverageAttendance = metrics.Round2(attendance / n)
	summary.AverageCompliance = metrics.Round2(compliance / n)
	summary.NeedsAttention = summary.TotalBacklog > attentionBacklogPerTeam
	return summary
}

// Details builds the table rows ordered by performance score, highest first.
// Ties keep roster order.
func Details(rows []Row) []EmployeeDetail {
	details := make([]EmployeeDetail, 0, len(rows))
	for _, r := range rows {
		m := r.Metrics
		details = append(details, EmployeeDetail{
			EmployeeID:       r.Employee.ID,
			FullName:         r.Employee.FullName(),
			Email:            r.Employee.Email,
			Department:       r.Employee.DepartmentName(),
			Position:         r.Employee.Position,
			AttendanceRate:   m.AttendanceRate.Value,
			ComplianceRate:   m.ComplianceRate.Value,
			BacklogCount:     m.BacklogCount,
			PerformanceScore: m.PerformanceScore,
			Status:           m.Status,
			StatusLabel:      m.Status.Label(),
			Degraded:         r.Degraded,
		})
	}

	sort.SliceStable(details, func(i, j int) bool {
		return details[i].PerformanceScore > details[j].PerformanceScore
	})
	return details
}

// ApplyFilter keeps the details matching f without re-reading any records.
func ApplyFilter(details []EmployeeDetail, f TeamFilter) ([]EmployeeDetail, error) {
	var status metrics.Status
	if f.Status != "" {
		var err error
		if status, err = ParseStatusLabel(f.Status); err != nil {
			return nil, err
		}
	}
	if f.Department == "" && status == "" {
		return details, nil
	}

	filtered := make([]EmployeeDetail, 0, len(details))
	for _, d := range details {
		if f.Department != "" && d.Department != f.Department {
			continue
		}
		if status != "" && d.Status != status {
			continue
		}
		filtered = append(filtered, d)
	}
	return filtered, nil
}
