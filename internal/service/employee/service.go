package employee

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/momentum-hr/performance-backend-go/internal/domain/employee"
	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/database"
	"github.com/momentum-hr/performance-backend-go/internal/service/authz"
)

type EmployeeServiceImpl struct {
	tx database.Transactor
	employee.EmployeeRepository
	users user.UserRepository
	authz *authz.Authorizer
}

func NewEmployeeService(tx database.Transactor, repo employee.EmployeeRepository, users user.UserRepository, authorizer *authz.Authorizer) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:                 tx,
		EmployeeRepository: repo,
		users:              users,
		authz:              authorizer,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CreateWithAccount implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateWithAccount(ctx context.Context, actor user.Actor, req employee.CreateEmployeeRequest) (employee.CreateEmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.CreateEmployeeResponse{}, err
	}
	if err := authz.RequirePermission(actor, user.PermissionAccountManage); err != nil {
		return employee.CreateEmployeeResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	var resp employee.CreateEmployeeResponse
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.EmployeeRepository.ExistsByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return employee.ErrEmailExists
		}

		exists, err = s.users.ExistsByUsername(ctx, username)
		if err != nil {
			return fmt.Errorf("failed to check username: %w", err)
		}
		if exists {
			return user.ErrUsernameExists
		}

		created, err := s.EmployeeRepository.Create(ctx, employee.Employee{
			FirstName:  strings.TrimSpace(req.FirstName),
			LastName:   strings.TrimSpace(req.LastName),
			Department: req.Department,
			Position:   req.Position,
			HireDate:   req.ParsedHireDate,
			Email:      email,
		})
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		account, err := s.users.Create(ctx, user.UserAccount{
			EmployeeID:   created.ID,
			Username:     username,
			PasswordHash: hash,
			Role:         user.Role(req.Role),
			IsFirstLogin: true,
		})
		if err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}

		resp = employee.CreateEmployeeResponse{
			Employee:  employee.ToResponse(created),
			AccountID: account.ID,
			Username:  account.Username,
			Role:      int(account.Role),
		}
		return nil
	})
	if err != nil {
		return employee.CreateEmployeeResponse{}, err
	}

	return resp, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, actor user.Actor, id string) (employee.EmployeeResponse, error) {
	if err := s.authz.CanView(ctx, actor, id); err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee.ToResponse(e), nil
}
