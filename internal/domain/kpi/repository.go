package kpi

import "context"

type KPIRepository interface {
	Create(ctx context.Context, k KPI) (KPI, error)
	GetByID(ctx context.Context, id string) (KPI, error)
	GetByIDs(ctx context.Context, ids []string) ([]KPI, error)
	List(ctx context.Context, activeOnly bool) ([]KPI, error)
	Update(ctx context.Context, k KPI) (KPI, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}
