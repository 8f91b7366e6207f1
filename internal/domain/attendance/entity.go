package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusLate    Status = "Late"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate:
		return true
	}
	return false
}

// AttendanceRecord is one employee day. IsCounted marks records already folded
// into a closed-out evaluation.
type AttendanceRecord struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Status     Status
	IsCounted  bool
	CreatedAt  time.Time
}
