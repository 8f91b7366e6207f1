// Package authz holds the role and team-membership checks shared by services.
package authz

import (
	"context"
	"fmt"

	"github.com/momentum-hr/performance-backend-go/internal/domain/team"
	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
)

// RequirePermission fails with user.ErrInsufficientPermissions when the actor's
// role lacks p.
func RequirePermission(actor user.Actor, p user.Permission) error {
	if !user.HasPermission(actor.Role, p) {
		return fmt.Errorf("%w: %s requires %s", user.ErrInsufficientPermissions, actor.Role, p)
	}
	return nil
}

type Authorizer struct {
	teams team.TeamRepository
}

func NewAuthorizer(teams team.TeamRepository) *Authorizer {
	return &Authorizer{teams: teams}
}

// RequireTeamManager checks that the actor holds p and manages employeeID
// through an active roster row.
func (a *Authorizer) RequireTeamManager(ctx context.Context, actor user.Actor, employeeID string, p user.Permission) error {
	if err := RequirePermission(actor, p); err != nil {
		return err
	}
	ok, err := a.teams.IsActiveMember(ctx, actor.AccountID, employeeID)
	if err != nil {
		return fmt.Errorf("failed to check team membership: %w", err)
	}
	if !ok {
		return user.ErrNotTeamManager
	}
	return nil
}

// CanView allows the employee themself, anyone holding employee.view_all, and
// the employee's active manager.
func (a *Authorizer) CanView(ctx context.Context, actor user.Actor, employeeID string) error {
	if actor.EmployeeID == employeeID || user.HasPermission(actor.Role, user.PermissionEmployeeViewAll) {
		return nil
	}
	if !user.HasPermission(actor.Role, user.PermissionTeamManage) {
		return user.ErrInsufficientPermissions
	}
	ok, err := a.teams.IsActiveMember(ctx, actor.AccountID, employeeID)
	if err != nil {
		return fmt.Errorf("failed to check team membership: %w", err)
	}
	if !ok {
		return user.ErrNotTeamManager
	}
	return nil
}
