package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/momentum-hr/performance-backend-go/internal/domain/team"
	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/database"
)

type teamRepositoryImpl struct {
	db *database.DB
}

func NewTeamRepository(db *database.DB) team.TeamRepository {
	return &teamRepositoryImpl{db: db}
}

const teamMemberSelect = `
	SELECT tm.id, tm.manager_id, tm.employee_id, tm.is_active, tm.added_date,
		   e.first_name || ' ' || e.last_name, e.department, e.position, e.email
	FROM team_members tm
	JOIN employees e ON e.id = tm.employee_id`

func scanTeamMember(row pgx.Row) (team.TeamMember, error) {
	var m team.TeamMember
	err := row.Scan(
		&m.ID,
		&m.ManagerID,
		&m.EmployeeID,
		&m.IsActive,
		&m.AddedDate,
		&m.EmployeeName,
		&m.Department,
		&m.Position,
		&m.EmployeeEmail,
	)
	return m, err
}

// Upsert implements team.TeamRepository.
func (r *teamRepositoryImpl) Upsert(ctx context.Context, managerID, employeeID string) (team.TeamMember, error) {
	q := GetQuerier(ctx, r.db)

	var id string
	err := q.QueryRow(ctx, `
		INSERT INTO team_members (id, manager_id, employee_id, is_active, added_date)
		VALUES ($1, $2, $3, TRUE, NOW())
		ON CONFLICT (manager_id, employee_id)
		DO UPDATE SET is_active = TRUE, added_date = NOW()
		RETURNING id
	`, newID(), managerID, employeeID).Scan(&id)
	if err != nil {
		return team.TeamMember{}, fmt.Errorf("failed to upsert team member: %w", err)
	}

	m, err := scanTeamMember(q.QueryRow(ctx, teamMemberSelect+` WHERE tm.id = $1`, id))
	if err != nil {
		return team.TeamMember{}, fmt.Errorf("failed to read team member: %w", err)
	}
	return m, nil
}

// Deactivate implements team.TeamRepository.
func (r *teamRepositoryImpl) Deactivate(ctx context.Context, managerID, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE team_members SET is_active = FALSE
		WHERE manager_id = $1 AND employee_id = $2 AND is_active
	`, managerID, employeeID)
	if err != nil {
		return fmt.Errorf("failed to deactivate team member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return team.ErrMemberNotFound
	}
	return nil
}

// GetActive implements team.TeamRepository.
func (r *teamRepositoryImpl) GetActive(ctx context.Context, managerID, employeeID string) (*team.TeamMember, error) {
	q := GetQuerier(ctx, r.db)

	m, err := scanTeamMember(q.QueryRow(ctx,
		teamMemberSelect+` WHERE tm.manager_id = $1 AND tm.employee_id = $2 AND tm.is_active`,
		managerID, employeeID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get team member: %w", err)
	}
	return &m, nil
}

// IsActiveMember implements team.TeamRepository.
func (r *teamRepositoryImpl) IsActiveMember(ctx context.Context, managerID, employeeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM team_members
			WHERE manager_id = $1 AND employee_id = $2 AND is_active
		)
	`, managerID, employeeID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// ListActive implements team.TeamRepository.
func (r *teamRepositoryImpl) ListActive(ctx context.Context, managerID string) ([]team.TeamMember, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, teamMemberSelect+`
		WHERE tm.manager_id = $1 AND tm.is_active
		ORDER BY tm.added_date, tm.id
	`, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query team members: %w", err)
	}
	defer rows.Close()

	var members []team.TeamMember
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// SearchAvailable implements team.TeamRepository.
func (r *teamRepositoryImpl) SearchAvailable(ctx context.Context, managerID, query string, limit int) ([]team.AvailableEmployee, error) {
	q := GetQuerier(ctx, r.db)

	if limit <= 0 {
		limit = 20
	}

	rows, err := q.Query(ctx, `
		SELECT e.id, e.first_name || ' ' || e.last_name AS full_name, e.email, e.department, e.position
		FROM employees e
		JOIN user_accounts ua ON ua.employee_id = e.id AND ua.role = $2
		WHERE NOT EXISTS (
			SELECT 1 FROM team_members tm
			WHERE tm.manager_id = $1 AND tm.employee_id = e.id AND tm.is_active
		)
		AND ($3::text = '' OR (e.first_name || ' ' || e.last_name) ILIKE '%' || $3 || '%' OR e.email ILIKE '%' || $3 || '%')
		ORDER BY full_name
		LIMIT $4
	`, managerID, int(user.RoleEmployee), query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search available employees: %w", err)
	}
	defer rows.Close()

	var out []team.AvailableEmployee
	for rows.Next() {
		var a team.AvailableEmployee
		if err := rows.Scan(&a.ID, &a.FullName, &a.Email, &a.Department, &a.Position); err != nil {
			return nil, fmt.Errorf("failed to scan available employee: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
