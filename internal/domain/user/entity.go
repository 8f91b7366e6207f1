package user

import (
	"fmt"
	"time"
)

// Role is the numeric account role code. The values are persisted and carried
// in access tokens, so they must never change.
type Role int

const (
	RoleAdmin      Role = 301
	RoleSupervisor Role = 302
	RoleEmployee   Role = 303
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleEmployee:
		return true
	}
	return false
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleSupervisor:
		return "supervisor"
	case RoleEmployee:
		return "employee"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

type UserAccount struct {
	ID           string
	EmployeeID   string
	Username     string
	PasswordHash string
	Role         Role
	IsFirstLogin bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *UserAccount) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *UserAccount) IsSupervisor() bool {
	return u.Role == RoleSupervisor
}

// Actor is the authenticated caller of a core operation.
type Actor struct {
	AccountID  string
	EmployeeID string
	Role       Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) IsSupervisor() bool {
	return a.Role == RoleSupervisor
}
