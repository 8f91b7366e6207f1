package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/momentum-hr/performance-backend-go/internal/domain/evaluation"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/database"
)

type evaluationRepositoryImpl struct {
	db *database.DB
}

func NewEvaluationRepository(db *database.DB) evaluation.EvaluationRepository {
	return &evaluationRepositoryImpl{db: db}
}

const evaluationColumns = `
	id, employee_id, created_by, evaluation_date, period, notes,
	compliance_rate, attendance_rate, overall_performance,
	window_start, closed_out_at, created_at`

func scanEvaluation(row pgx.Row) (evaluation.Evaluation, error) {
	var e evaluation.Evaluation
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.CreatedBy, &e.EvaluationDate, &e.Period, &e.Notes,
		&e.ComplianceRate, &e.AttendanceRate, &e.OverallPerformance,
		&e.WindowStart, &e.ClosedOutAt, &e.CreatedAt,
	)
	return e, err
}

// Create implements evaluation.EvaluationRepository.
func (r *evaluationRepositoryImpl) Create(ctx context.Context, e evaluation.Evaluation) (evaluation.Evaluation, error) {
	q := GetQuerier(ctx, r.db)

	if e.ID == "" {
		e.ID = newID()
	}

	query := `
		INSERT INTO evaluations (
			id, employee_id, created_by, evaluation_date, period, notes,
			compliance_rate, attendance_rate, overall_performance, window_start
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + evaluationColumns

	created, err := scanEvaluation(q.QueryRow(ctx, query,
		e.ID, e.EmployeeID, e.CreatedBy, e.EvaluationDate, e.Period, e.Notes,
		e.ComplianceRate, e.AttendanceRate, e.OverallPerformance, e.WindowStart,
	))
	if err != nil {
		if isUniqueViolation(err, "evaluations_employee_id_period_key") {
			return evaluation.Evaluation{}, evaluation.ErrDuplicatePeriod
		}
		return evaluation.Evaluation{}, fmt.Errorf("failed to insert evaluation: %w", err)
	}
	return created, nil
}

// CreateKPIs implements evaluation.EvaluationRepository.
func (r *evaluationRepositoryImpl) CreateKPIs(ctx context.Context, rows []evaluation.EvaluationKPI) ([]evaluation.EvaluationKPI, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	batch := &pgx.Batch{}
	for i := range rows {
		if rows[i].ID == "" {
			rows[i].ID = newID()
		}
		batch.Queue(`
			INSERT INTO evaluation_kpis (id, evaluation_id, kpi_id, value, target, notes)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, rows[i].ID, rows[i].EvaluationID, rows[i].KPIID, rows[i].Value, rows[i].Target, rows[i].Notes)
	}

	br := q.SendBatch(ctx, batch)
	defer br.Close()
	for range rows {
		if _, err := br.Exec(); err != nil {
			if isUniqueViolation(err, "evaluation_kpis_evaluation_id_kpi_id_key") {
				return nil, evaluation.ErrDuplicateKPI
			}
			return nil, fmt.Errorf("failed to insert evaluation kpi: %w", err)
		}
	}
	return rows, nil
}

func (r *evaluationRepositoryImpl) get(ctx context.Context, id string, lock bool) (evaluation.Evaluation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + evaluationColumns + ` FROM evaluations WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	e, err := scanEvaluation(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return evaluation.Evaluation{}, evaluation.ErrEvaluationNotFound
		}
		return evaluation.Evaluation{}, fmt.Errorf("failed to get evaluation: %w", err)
	}
	return e, nil
}

// GetByID implements evaluation.EvaluationRepository.
func (r *evaluationRepositoryImpl) GetByID(ctx context.Context, id string) (evaluation.Evaluation, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate implements evaluation.EvaluationRepository.
func (r *evaluationRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (evaluation.Evaluation, error) {
	return r.get(ctx, id, true)
}

// GetLatestByEmployee implements evaluation.EvaluationRepository.
func (r *evaluationRepositoryImpl) GetLatestByEmployee(ctx context.Context, employeeID string) (*evaluation.Evaluation, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEvaluation(q.QueryRow(ctx, `
		SELECT `+evaluationColumns+` FROM evaluations
		WHERE employee_id = $1
		ORDER BY evaluation_date DESC, created_at DESC
		LIMIT 1
	`, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest evaluation: %w", err)
	}
	return &e, nil
}

// ListByEmployee implements evaluation.EvaluationRepository.
func (r *evaluationRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]evaluation.Evaluation, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+evaluationColumns+` FROM evaluations
		WHERE employee_id = $1
		ORDER BY evaluation_date DESC, created_at DESC
	`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations: %w", err)
	}
	defer rows.Close()

	var out []evaluation.Evaluation
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListKPIs implements evaluation.EvaluationRepository.
func (r *evaluationRepositoryImpl) ListKPIs(ctx context.Context, evaluationIDs []string) ([]evaluation.EvaluationKPI, error) {
	if len(evaluationIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT ek.id, ek.evaluation_id, ek.kpi_id, ek.value, ek.target, ek.notes, k.name
		FROM evaluation_kpis ek
		JOIN kpis k ON k.id = ek.kpi_id
		WHERE ek.evaluation_id = ANY($1::uuid[])
		ORDER BY k.name
	`, evaluationIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluation kpis: %w", err)
	}
	defer rows.Close()

	var out []evaluation.EvaluationKPI
	for rows.Next() {
		var ek evaluation.EvaluationKPI
		if err := rows.Scan(&ek.ID, &ek.EvaluationID, &ek.KPIID, &ek.Value, &ek.Target, &ek.Notes, &ek.KPIName); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation kpi: %w", err)
		}
		out = append(out, ek)
	}
	return out, rows.Err()
}

// ExistsByPeriod implements evaluation.EvaluationRepository.
func (r *evaluationRepositoryImpl) ExistsByPeriod(ctx context.Context, employeeID, period string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM evaluations WHERE employee_id = $1 AND period = $2)
	`, employeeID, period).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// MarkClosedOut implements evaluation.EvaluationRepository. An already stamped
// evaluation keeps its first timestamp.
func (r *evaluationRepositoryImpl) MarkClosedOut(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE evaluations SET closed_out_at = $1
		WHERE id = $2 AND closed_out_at IS NULL
	`, at, id)
	if err != nil {
		return fmt.Errorf("failed to close out evaluation: %w", err)
	}
	return nil
}
