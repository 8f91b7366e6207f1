package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/momentum-hr/performance-backend-go/internal/domain/attendance"
	"github.com/momentum-hr/performance-backend-go/internal/domain/auth"
	"github.com/momentum-hr/performance-backend-go/internal/domain/dashboard"
	"github.com/momentum-hr/performance-backend-go/internal/domain/employee"
	"github.com/momentum-hr/performance-backend-go/internal/domain/evaluation"
	"github.com/momentum-hr/performance-backend-go/internal/domain/kpi"
	"github.com/momentum-hr/performance-backend-go/internal/domain/task"
	"github.com/momentum-hr/performance-backend-go/internal/domain/team"
	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Authorization
	case errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, user.ErrNotTeamManager),
		errors.Is(err, task.ErrNotTaskOwner),
		errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Not found
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User account not found")
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, team.ErrMemberNotFound):
		NotFound(w, "Team member not found")
	case errors.Is(err, kpi.ErrKPINotFound):
		NotFound(w, "KPI not found")
	case errors.Is(err, evaluation.ErrEvaluationNotFound):
		NotFound(w, "Evaluation not found")

	// Task lifecycle
	case errors.Is(err, task.ErrInvalidTransition):
		InvalidTransition(w, err.Error())
	case errors.Is(err, task.ErrConcurrentUpdate):
		Conflict(w, err.Error())

	// Conflicts
	case errors.Is(err, employee.ErrEmailExists),
		errors.Is(err, user.ErrUsernameExists),
		errors.Is(err, team.ErrAlreadyMember),
		errors.Is(err, attendance.ErrAttendanceExists),
		errors.Is(err, kpi.ErrKPINameExists),
		errors.Is(err, evaluation.ErrDuplicatePeriod),
		errors.Is(err, evaluation.ErrEvaluationOutOfOrder):
		Conflict(w, err.Error())

	// Business rules
	case errors.Is(err, task.ErrInvalidStatus),
		errors.Is(err, task.ErrInvalidReviewAction),
		errors.Is(err, task.ErrUnsupportedFile),
		errors.Is(err, task.ErrFileTooLarge),
		errors.Is(err, task.ErrForeignAttachment),
		errors.Is(err, dashboard.ErrInvalidStatusFilter),
		errors.Is(err, attendance.ErrFutureDate),
		errors.Is(err, team.ErrCannotAddSelf),
		errors.Is(err, team.ErrNotAssignable),
		errors.Is(err, evaluation.ErrDuplicateKPI),
		errors.Is(err, evaluation.ErrFutureDate),
		errors.Is(err, user.ErrInvalidRole):
		Unprocessable(w, err.Error())

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
