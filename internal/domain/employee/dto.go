package employee

import (
	"time"

	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/validator"
)

// CreateEmployeeRequest provisions an employee together with its login account.
type CreateEmployeeRequest struct {
	FirstName  string  `json:"first_name" validate:"required,max=150"`
	LastName   string  `json:"last_name" validate:"required,max=150"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=150"`
	Position   *string `json:"position,omitempty" validate:"omitempty,max=150"`
	HireDate   *string `json:"hire_date,omitempty"`
	Email      string  `json:"email" validate:"required,email"`
	Username   string  `json:"username" validate:"required"`
	Password   string  `json:"password" validate:"required,min=8"`
	Role       int     `json:"role" validate:"required"`

	ParsedHireDate *time.Time `json:"-"`
}

func (r *CreateEmployeeRequest) Validate() error {
	errs := validator.Struct(r)

	if !validator.IsEmpty(r.Username) && !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username may only contain letters, numbers, dots, underscores, and hyphens",
		})
	}

	if r.Role != 0 && !user.Role(r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of 301, 302, 303",
		})
	}

	if r.HireDate != nil && *r.HireDate != "" {
		hireDate, ok := validator.IsValidDate(*r.HireDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "hire_date",
				Message: "hire_date must be in YYYY-MM-DD format",
			})
		} else {
			r.ParsedHireDate = &hireDate
		}
	}

	return errs.Err()
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	FullName   string  `json:"full_name"`
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
	HireDate   *string `json:"hire_date,omitempty"`
	Email      string  `json:"email"`
}

type CreateEmployeeResponse struct {
	Employee  EmployeeResponse `json:"employee"`
	AccountID string           `json:"account_id"`
	Username  string           `json:"username"`
	Role      int              `json:"role"`
}

func ToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:         e.ID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		FullName:   e.FullName(),
		Department: e.Department,
		Position:   e.Position,
		Email:      e.Email,
	}
	if e.HireDate != nil {
		s := e.HireDate.Format(validator.DateLayout)
		resp.HireDate = &s
	}
	return resp
}
