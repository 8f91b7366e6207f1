package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/momentum-hr/performance-backend-go/internal/domain/attendance"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	if record.ID == "" {
		record.ID = newID()
	}

	query := `
		INSERT INTO attendance_records (id, employee_id, date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, employee_id, date, status, is_counted, created_at
	`

	var created attendance.AttendanceRecord
	err := q.QueryRow(ctx, query, record.ID, record.EmployeeID, record.Date, string(record.Status)).Scan(
		&created.ID,
		&created.EmployeeID,
		&created.Date,
		&created.Status,
		&created.IsCounted,
		&created.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "attendance_records_employee_id_date_key") {
			return attendance.AttendanceRecord{}, attendance.ErrAttendanceExists
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to insert attendance: %w", err)
	}
	return created, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	where := []string{"employee_id = $1"}
	args := []interface{}{employeeID}
	argIdx := 2

	if from != nil {
		where = append(where, fmt.Sprintf("date >= $%d", argIdx))
		args = append(args, *from)
		argIdx++
	}
	if to != nil {
		where = append(where, fmt.Sprintf("date <= $%d", argIdx))
		args = append(args, *to)
		argIdx++
	}

	query := `
		SELECT id, employee_id, date, status, is_counted, created_at
		FROM attendance_records
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		var rec attendance.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &rec.Status, &rec.IsCounted, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// MarkCountedThrough implements attendance.AttendanceRepository.
func (a *attendanceRepository) MarkCountedThrough(ctx context.Context, employeeID string, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `
		UPDATE attendance_records SET is_counted = TRUE
		WHERE employee_id = $1 AND date <= $2 AND NOT is_counted
	`, employeeID, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to mark attendance counted: %w", err)
	}
	return tag.RowsAffected(), nil
}
