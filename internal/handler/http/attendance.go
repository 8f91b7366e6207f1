package http

import (
	"net/http"

	"github.com/momentum-hr/performance-backend-go/internal/domain/attendance"
	"github.com/momentum-hr/performance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// Record handles POST /attendance
func (h *attendanceHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	var req attendance.RecordAttendanceRequest
	if !decodeJSON(w, r, &req, "RecordAttendance") {
		return
	}

	result, err := h.attendanceService.Record(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance recorded", result)
}

// List handles GET /attendance?employee_id=&start_date=&end_date=
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	var filter attendance.AttendanceFilter
	filter.EmployeeID = r.URL.Query().Get("employee_id")
	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	result, err := h.attendanceService.List(r.Context(), caller, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: len(result)})
}
