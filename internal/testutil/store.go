package testutil

import (
	"context"
	"strings"
	"time"

	"github.com/momentum-hr/performance-backend-go/internal/domain/employee"
	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
)

// Store wires every fake repository together.
type Store struct {
	Employees   *Employees
	Users       *Users
	Teams       *Teams
	Attendance  *Attendance
	Tasks       *Tasks
	KPIs        *KPIs
	Evaluations *Evaluations
	Tx          *Transactor
}

func NewStore() *Store {
	employees := NewEmployees()
	users := NewUsers()
	kpis := NewKPIs()
	return &Store{
		Employees:   employees,
		Users:       users,
		Teams:       NewTeams(employees, users),
		Attendance:  NewAttendance(),
		Tasks:       NewTasks(),
		KPIs:        kpis,
		Evaluations: NewEvaluations(kpis),
		Tx:          &Transactor{},
	}
}

// SeedAccount creates an employee with a login and returns its actor.
// It panics on failure; seeds are test setup.
func (s *Store) SeedAccount(firstName, department string, role user.Role) user.Actor {
	ctx := context.Background()
	dept := department
	e, err := s.Employees.Create(ctx, employee.Employee{
		FirstName:  firstName,
		LastName:   "Test",
		Department: &dept,
		Email:      strings.ToLower(firstName) + "@momentum.test",
		CreatedAt:  time.Now(),
	})
	if err != nil {
		panic(err)
	}
	u, err := s.Users.Create(ctx, user.UserAccount{
		EmployeeID: e.ID,
		Username:   strings.ToLower(firstName),
		Role:       role,
	})
	if err != nil {
		panic(err)
	}
	return user.Actor{AccountID: u.ID, EmployeeID: e.ID, Role: role}
}

// AddToTeam puts member on manager's active roster.
func (s *Store) AddToTeam(manager, member user.Actor) {
	if _, err := s.Teams.Upsert(context.Background(), manager.AccountID, member.EmployeeID); err != nil {
		panic(err)
	}
}
