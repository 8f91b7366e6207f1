package attendance

import (
	"time"

	"github.com/momentum-hr/performance-backend-go/internal/pkg/validator"
)

type RecordAttendanceRequest struct {
	EmployeeID string `json:"employee_id,omitempty"`
	Date       string `json:"date" validate:"required"`
	Status     string `json:"status" validate:"required,oneof=Present Absent Late"`

	ParsedDate time.Time `json:"-"`
}

func (r *RecordAttendanceRequest) Validate() error {
	errs := validator.Struct(r)

	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if !validator.IsEmpty(r.Date) {
		date, ok := validator.IsValidDate(r.Date)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		} else {
			r.ParsedDate = date
		}
	}

	return errs.Err()
}

type AttendanceFilter struct {
	EmployeeID string  `json:"employee_id"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != "" && !validator.IsValidUUID(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		d, ok := validator.IsValidDate(*f.StartDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		} else {
			f.From = &d
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		d, ok := validator.IsValidDate(*f.EndDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		} else {
			f.To = &d
		}
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	return errs.Err()
}

type AttendanceResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	IsCounted  bool   `json:"is_counted"`
}

func ToResponse(r AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Date:       r.Date.Format(validator.DateLayout),
		Status:     string(r.Status),
		IsCounted:  r.IsCounted,
	}
}
