package kpi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentum-hr/performance-backend-go/internal/domain/kpi"
	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/validator"
	"github.com/momentum-hr/performance-backend-go/internal/testutil"
)

var admin = user.Actor{AccountID: "acc-admin", EmployeeID: "emp-admin", Role: user.RoleAdmin}

func TestCreateAndList(t *testing.T) {
	ctx := context.Background()
	svc := NewKPIService(testutil.NewKPIs())

	created, err := svc.Create(ctx, admin, kpi.CreateKPIRequest{Name: " Tickets closed ", Type: "count", TargetValue: 40})
	require.NoError(t, err)
	assert.Equal(t, "Tickets closed", created.Name)
	assert.True(t, created.IsActive)

	_, err = svc.Create(ctx, admin, kpi.CreateKPIRequest{Name: "tickets CLOSED", Type: "count", TargetValue: 10})
	assert.ErrorIs(t, err, kpi.ErrKPINameExists)

	inactive := false
	_, err = svc.Update(ctx, admin, created.ID, kpi.UpdateKPIRequest{IsActive: &inactive})
	require.NoError(t, err)

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreate_Guards(t *testing.T) {
	ctx := context.Background()
	svc := NewKPIService(testutil.NewKPIs())

	sup := user.Actor{Role: user.RoleSupervisor}
	_, err := svc.Create(ctx, sup, kpi.CreateKPIRequest{Name: "Quality", Type: "percent", TargetValue: 90})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = svc.Create(ctx, admin, kpi.CreateKPIRequest{Name: "Quality", Type: "percent", TargetValue: 0})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "target_value")
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewKPIService(testutil.NewKPIs())

	created, err := svc.Create(ctx, admin, kpi.CreateKPIRequest{Name: "Quality", Type: "percent", TargetValue: 90})
	require.NoError(t, err)

	target := 95.0
	updated, err := svc.Update(ctx, admin, created.ID, kpi.UpdateKPIRequest{TargetValue: &target})
	require.NoError(t, err)
	assert.Equal(t, 95.0, updated.TargetValue)
	assert.Equal(t, "Quality", updated.Name)

	_, err = svc.Update(ctx, admin, testutil.NewID(), kpi.UpdateKPIRequest{TargetValue: &target})
	assert.ErrorIs(t, err, kpi.ErrKPINotFound)
}
