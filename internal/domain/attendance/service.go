package attendance

import (
	"context"

	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// Record logs a day for the actor, or for any employee when the actor is an admin
	Record(ctx context.Context, actor user.Actor, req RecordAttendanceRequest) (AttendanceResponse, error)

	// List returns attendance visible to the actor
	List(ctx context.Context, actor user.Actor, filter AttendanceFilter) ([]AttendanceResponse, error)
}
