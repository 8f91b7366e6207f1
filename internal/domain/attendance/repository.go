package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create fails with ErrAttendanceExists when the (employee, date) pair is taken
	Create(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)

	// ListByEmployee returns records ordered by date, optionally bounded (inclusive)
	ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]AttendanceRecord, error)

	// MarkCountedThrough flags every record dated on or before the cutoff
	MarkCountedThrough(ctx context.Context, employeeID string, cutoff time.Time) (int64, error)
}
