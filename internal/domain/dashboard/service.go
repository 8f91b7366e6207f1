package dashboard

import (
	"context"

	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
)

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// TeamDashboard aggregates metrics for the actor's active roster
	TeamDashboard(ctx context.Context, actor user.Actor, filter TeamFilter) (*TeamDashboardResponse, error)

	// MyDashboard returns the actor's own metrics card
	MyDashboard(ctx context.Context, actor user.Actor) (*MyDashboardResponse, error)
}
