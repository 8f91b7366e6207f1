package employee

import (
	"time"
)

type Employee struct {
	ID         string
	FirstName  string
	LastName   string
	Department *string
	Position   *string
	HireDate   *time.Time
	Email      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// DepartmentName returns the department or "" when unset.
func (e Employee) DepartmentName() string {
	if e.Department == nil {
		return ""
	}
	return *e.Department
}
