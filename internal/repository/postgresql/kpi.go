package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/momentum-hr/performance-backend-go/internal/domain/kpi"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/database"
)

type kpiRepositoryImpl struct {
	db *database.DB
}

func NewKPIRepository(db *database.DB) kpi.KPIRepository {
	return &kpiRepositoryImpl{db: db}
}

const kpiColumns = `id, name, type, description, target_value, is_active, created_at, updated_at`

func scanKPI(row pgx.Row) (kpi.KPI, error) {
	var k kpi.KPI
	err := row.Scan(&k.ID, &k.Name, &k.Type, &k.Description, &k.TargetValue, &k.IsActive, &k.CreatedAt, &k.UpdatedAt)
	return k, err
}

func collectKPIs(rows pgx.Rows) ([]kpi.KPI, error) {
	defer rows.Close()
	var out []kpi.KPI
	for rows.Next() {
		k, err := scanKPI(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan kpi: %w", err)
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// Create implements kpi.KPIRepository.
func (r *kpiRepositoryImpl) Create(ctx context.Context, k kpi.KPI) (kpi.KPI, error) {
	q := GetQuerier(ctx, r.db)

	if k.ID == "" {
		k.ID = newID()
	}

	created, err := scanKPI(q.QueryRow(ctx, `
		INSERT INTO kpis (id, name, type, description, target_value, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+kpiColumns,
		k.ID, k.Name, k.Type, k.Description, k.TargetValue, k.IsActive,
	))
	if err != nil {
		if isUniqueViolation(err, "kpis_name_key") {
			return kpi.KPI{}, kpi.ErrKPINameExists
		}
		return kpi.KPI{}, fmt.Errorf("failed to insert kpi: %w", err)
	}
	return created, nil
}

// GetByID implements kpi.KPIRepository.
func (r *kpiRepositoryImpl) GetByID(ctx context.Context, id string) (kpi.KPI, error) {
	q := GetQuerier(ctx, r.db)

	k, err := scanKPI(q.QueryRow(ctx, `SELECT `+kpiColumns+` FROM kpis WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kpi.KPI{}, kpi.ErrKPINotFound
		}
		return kpi.KPI{}, fmt.Errorf("failed to get kpi: %w", err)
	}
	return k, nil
}

// GetByIDs implements kpi.KPIRepository.
func (r *kpiRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]kpi.KPI, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+kpiColumns+` FROM kpis WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query kpis: %w", err)
	}
	return collectKPIs(rows)
}

// List implements kpi.KPIRepository.
func (r *kpiRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]kpi.KPI, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+kpiColumns+` FROM kpis
		WHERE ($1::boolean = FALSE OR is_active)
		ORDER BY name
	`, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query kpis: %w", err)
	}
	return collectKPIs(rows)
}

// Update implements kpi.KPIRepository.
func (r *kpiRepositoryImpl) Update(ctx context.Context, k kpi.KPI) (kpi.KPI, error) {
	q := GetQuerier(ctx, r.db)

	updated, err := scanKPI(q.QueryRow(ctx, `
		UPDATE kpis
		SET name = $1, type = $2, description = $3, target_value = $4, is_active = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING `+kpiColumns,
		k.Name, k.Type, k.Description, k.TargetValue, k.IsActive, k.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kpi.KPI{}, kpi.ErrKPINotFound
		}
		if isUniqueViolation(err, "kpis_name_key") {
			return kpi.KPI{}, kpi.ErrKPINameExists
		}
		return kpi.KPI{}, fmt.Errorf("failed to update kpi: %w", err)
	}
	return updated, nil
}

// ExistsByName implements kpi.KPIRepository.
func (r *kpiRepositoryImpl) ExistsByName(ctx context.Context, name string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM kpis WHERE lower(name) = lower($1))`, name).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
