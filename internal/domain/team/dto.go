package team

import (
	"github.com/momentum-hr/performance-backend-go/internal/pkg/validator"
)

type AddMemberRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
}

func (r *AddMemberRequest) Validate() error {
	errs := validator.Struct(r)
	if !validator.IsEmpty(r.EmployeeID) && !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	return errs.Err()
}

type AvailableEmployee struct {
	ID         string  `json:"id"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
}

type TeamMemberResponse struct {
	EmployeeID string  `json:"employee_id"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
	AddedDate  string  `json:"added_date"`
}

func ToResponse(m TeamMember) TeamMemberResponse {
	resp := TeamMemberResponse{
		EmployeeID: m.EmployeeID,
		Department: m.Department,
		Position:   m.Position,
		AddedDate:  m.AddedDate.Format(validator.DateLayout),
	}
	if m.EmployeeName != nil {
		resp.FullName = *m.EmployeeName
	}
	if m.EmployeeEmail != nil {
		resp.Email = *m.EmployeeEmail
	}
	return resp
}
