package authz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/testutil"
)

func TestRequirePermission(t *testing.T) {
	admin := user.Actor{Role: user.RoleAdmin}
	emp := user.Actor{Role: user.RoleEmployee}

	assert.NoError(t, RequirePermission(admin, user.PermissionKPIManage))
	assert.ErrorIs(t, RequirePermission(emp, user.PermissionKPIManage), user.ErrInsufficientPermissions)
	assert.ErrorIs(t, RequirePermission(admin, user.PermissionTaskReview), user.ErrInsufficientPermissions)
}

func TestRequireTeamManager(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore()
	sup := store.SeedAccount("Sam", "Engineering", user.RoleSupervisor)
	other := store.SeedAccount("Olga", "Engineering", user.RoleSupervisor)
	emp := store.SeedAccount("Eve", "Engineering", user.RoleEmployee)
	store.AddToTeam(sup, emp)

	a := NewAuthorizer(store.Teams)

	assert.NoError(t, a.RequireTeamManager(ctx, sup, emp.EmployeeID, user.PermissionTaskReview))
	assert.ErrorIs(t, a.RequireTeamManager(ctx, other, emp.EmployeeID, user.PermissionTaskReview), user.ErrNotTeamManager)
	assert.ErrorIs(t, a.RequireTeamManager(ctx, emp, emp.EmployeeID, user.PermissionTaskReview), user.ErrInsufficientPermissions)

	// Removed members no longer count
	assert.NoError(t, store.Teams.Deactivate(ctx, sup.AccountID, emp.EmployeeID))
	assert.ErrorIs(t, a.RequireTeamManager(ctx, sup, emp.EmployeeID, user.PermissionTaskReview), user.ErrNotTeamManager)
}

func TestCanView(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore()
	admin := store.SeedAccount("Ada", "HR", user.RoleAdmin)
	sup := store.SeedAccount("Sam", "Engineering", user.RoleSupervisor)
	emp := store.SeedAccount("Eve", "Engineering", user.RoleEmployee)
	peer := store.SeedAccount("Pat", "Engineering", user.RoleEmployee)
	store.AddToTeam(sup, emp)

	a := NewAuthorizer(store.Teams)

	assert.NoError(t, a.CanView(ctx, emp, emp.EmployeeID))
	assert.NoError(t, a.CanView(ctx, admin, emp.EmployeeID))
	assert.NoError(t, a.CanView(ctx, sup, emp.EmployeeID))
	assert.ErrorIs(t, a.CanView(ctx, sup, peer.EmployeeID), user.ErrNotTeamManager)
	assert.ErrorIs(t, a.CanView(ctx, peer, emp.EmployeeID), user.ErrInsufficientPermissions)
}
