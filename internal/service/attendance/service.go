package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/momentum-hr/performance-backend-go/internal/domain/attendance"
	"github.com/momentum-hr/performance-backend-go/internal/domain/employee"
	"github.com/momentum-hr/performance-backend-go/internal/domain/metrics"
	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/service/authz"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	authz *authz.Authorizer
	now   func() time.Time
}

func NewAttendanceService(repo attendance.AttendanceRepository, employees employee.EmployeeRepository, authorizer *authz.Authorizer) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: repo,
		EmployeeRepository:   employees,
		authz:                authorizer,
		now:                  time.Now,
	}
}

// Record implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Record(ctx context.Context, actor user.Actor, req attendance.RecordAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	employeeID := req.EmployeeID
	if employeeID == "" {
		employeeID = actor.EmployeeID
	}
	canRecordAny := user.HasPermission(actor.Role, user.PermissionAttendanceRecordAny)
	if employeeID != actor.EmployeeID && !canRecordAny {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}
	if employeeID == actor.EmployeeID && !canRecordAny {
		if err := authz.RequirePermission(actor, user.PermissionAttendanceRecordOwn); err != nil {
			return attendance.AttendanceResponse{}, err
		}
	}

	if req.ParsedDate.After(metrics.Day(a.now())) {
		return attendance.AttendanceResponse{}, attendance.ErrFutureDate
	}

	if _, err := a.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	record, err := a.AttendanceRepository.Create(ctx, attendance.AttendanceRecord{
		EmployeeID: employeeID,
		Date:       req.ParsedDate,
		Status:     attendance.Status(req.Status),
	})
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to record attendance: %w", err)
	}

	return attendance.ToResponse(record), nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, actor user.Actor, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	employeeID := filter.EmployeeID
	if employeeID == "" {
		employeeID = actor.EmployeeID
	}
	if err := a.authz.CanView(ctx, actor, employeeID); err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	out := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		out = append(out, attendance.ToResponse(r))
	}
	return out, nil
}
