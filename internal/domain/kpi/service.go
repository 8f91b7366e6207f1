package kpi

import (
	"context"

	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
)

type KPIService interface {
	List(ctx context.Context, activeOnly bool) ([]KPIResponse, error)
	Create(ctx context.Context, actor user.Actor, req CreateKPIRequest) (KPIResponse, error)
	Update(ctx context.Context, actor user.Actor, id string, req UpdateKPIRequest) (KPIResponse, error)
}
