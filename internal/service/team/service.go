package team

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/momentum-hr/performance-backend-go/internal/domain/employee"
	"github.com/momentum-hr/performance-backend-go/internal/domain/team"
	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/database"
	"github.com/momentum-hr/performance-backend-go/internal/service/authz"
)

const searchLimit = 20

type TeamServiceImpl struct {
	tx database.Transactor
	team.TeamRepository
	employees employee.EmployeeRepository
	users     user.UserRepository
}

func NewTeamService(tx database.Transactor, repo team.TeamRepository, employees employee.EmployeeRepository, users user.UserRepository) team.TeamService {
	return &TeamServiceImpl{
		tx:             tx,
		TeamRepository: repo,
		employees:      employees,
		users:          users,
	}
}

// AddMember implements team.TeamService.
func (s *TeamServiceImpl) AddMember(ctx context.Context, actor user.Actor, req team.AddMemberRequest) (team.TeamMemberResponse, error) {
	if err := req.Validate(); err != nil {
		return team.TeamMemberResponse{}, err
	}
	if err := authz.RequirePermission(actor, user.PermissionTeamManage); err != nil {
		return team.TeamMemberResponse{}, err
	}
	if req.EmployeeID == actor.EmployeeID {
		return team.TeamMemberResponse{}, team.ErrCannotAddSelf
	}

	var member team.TeamMember
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.employees.GetByID(ctx, req.EmployeeID); err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}

		active, err := s.TeamRepository.GetActive(ctx, actor.AccountID, req.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to check team membership: %w", err)
		}
		if active != nil {
			return team.ErrAlreadyMember
		}

		account, err := s.users.GetByEmployeeID(ctx, req.EmployeeID)
		if err != nil && !errors.Is(err, user.ErrUserNotFound) {
			return fmt.Errorf("failed to get account: %w", err)
		}
		if err != nil || account.Role != user.RoleEmployee {
			return team.ErrNotAssignable
		}

		member, err = s.TeamRepository.Upsert(ctx, actor.AccountID, req.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to add team member: %w", err)
		}
		return nil
	})
	if err != nil {
		return team.TeamMemberResponse{}, err
	}

	return team.ToResponse(member), nil
}

// RemoveMember implements team.TeamService.
func (s *TeamServiceImpl) RemoveMember(ctx context.Context, actor user.Actor, employeeID string) error {
	if err := authz.RequirePermission(actor, user.PermissionTeamManage); err != nil {
		return err
	}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.TeamRepository.Deactivate(ctx, actor.AccountID, employeeID)
	})
	if err != nil {
		if errors.Is(err, team.ErrMemberNotFound) {
			return err
		}
		return fmt.Errorf("failed to remove team member: %w", err)
	}
	return nil
}

// ListMembers implements team.TeamService.
func (s *TeamServiceImpl) ListMembers(ctx context.Context, actor user.Actor) ([]team.TeamMemberResponse, error) {
	if err := authz.RequirePermission(actor, user.PermissionTeamManage); err != nil {
		return nil, err
	}
	members, err := s.TeamRepository.ListActive(ctx, actor.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	out := make([]team.TeamMemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, team.ToResponse(m))
	}
	return out, nil
}

// SearchAvailable implements team.TeamService.
func (s *TeamServiceImpl) SearchAvailable(ctx context.Context, actor user.Actor, query string) ([]team.AvailableEmployee, error) {
	if err := authz.RequirePermission(actor, user.PermissionTeamManage); err != nil {
		return nil, err
	}
	found, err := s.TeamRepository.SearchAvailable(ctx, actor.AccountID, strings.TrimSpace(query), searchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search employees: %w", err)
	}
	out := make([]team.AvailableEmployee, 0, len(found))
	for _, e := range found {
		if e.ID != actor.EmployeeID {
			out = append(out, e)
		}
	}
	return out, nil
}
