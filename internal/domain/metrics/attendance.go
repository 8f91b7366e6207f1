package metrics

import (
	"time"

	"github.com/momentum-hr/performance-backend-go/internal/domain/attendance"
)

// AttendanceRate is the live rate over [fiscal window start, asOf], ignoring
// records already counted by a closed-out evaluation.
func AttendanceRate(records []attendance.AttendanceRecord, asOf time.Time) Rate {
	start := FiscalWindowStart(asOf)
	end := Day(asOf)

	var present, total int
	for _, r := range records {
		if r.IsCounted {
			continue
		}
		day := Day(r.Date)
		if day.Before(start) || day.After(end) {
			continue
		}
		total++
		if r.Status == attendance.StatusPresent {
			present++
		}
	}
	return percent(present, total)
}

// PeriodAttendanceRate is the rate over (after, asOf] used when freezing an
// evaluation. A nil after means the employee has no earlier evaluation.
func PeriodAttendanceRate(records []attendance.AttendanceRecord, after *time.Time, asOf time.Time) Rate {
	var present, total int
	for _, r := range records {
		if !inWindow(r.Date, after, asOf) {
			continue
		}
		total++
		if r.Status == attendance.StatusPresent {
			present++
		}
	}
	return percent(present, total)
}
