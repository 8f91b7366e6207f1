package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/momentum-hr/performance-backend-go/internal/domain/task"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/database"
)

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepositoryImpl{db: db}
}

const taskColumns = `
	id, employee_id, assigned_by, description, due_date, status, priority,
	created_date, completed_date, is_evaluated, review_status,
	reviewed_by, reviewed_at, review_notes, rejection_count,
	attachment_file_name, attachment_uploaded_at, attachment_storage_ref,
	version, updated_at`

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	var fileName, storageRef *string
	var uploadedAt *time.Time
	err := row.Scan(
		&t.ID, &t.EmployeeID, &t.AssignedBy, &t.Description, &t.DueDate, &t.Status, &t.Priority,
		&t.CreatedDate, &t.CompletedDate, &t.IsEvaluated, &t.ReviewStatus,
		&t.ReviewedBy, &t.ReviewedAt, &t.ReviewNotes, &t.RejectionCount,
		&fileName, &uploadedAt, &storageRef,
		&t.Version, &t.UpdatedAt,
	)
	if err != nil {
		return task.Task{}, err
	}
	if fileName != nil && uploadedAt != nil && storageRef != nil {
		t.Attachment = &task.Attachment{
			FileName:   *fileName,
			UploadedAt: *uploadedAt,
			StorageRef: *storageRef,
		}
	}
	return t, nil
}

func attachmentArgs(a *task.Attachment) (fileName, storageRef *string, uploadedAt *time.Time) {
	if a == nil {
		return nil, nil, nil
	}
	return &a.FileName, &a.StorageRef, &a.UploadedAt
}

// Create implements task.TaskRepository.
func (r *taskRepositoryImpl) Create(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	if t.ID == "" {
		t.ID = newID()
	}

	query := `
		INSERT INTO tasks (
			id, employee_id, assigned_by, description, due_date, status, priority,
			created_date, review_status, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1)
		RETURNING ` + taskColumns

	created, err := scanTask(q.QueryRow(ctx, query,
		t.ID, t.EmployeeID, t.AssignedBy, t.Description, t.DueDate,
		string(t.Status), string(t.Priority), t.CreatedDate, string(t.ReviewStatus),
	))
	if err != nil {
		return task.Task{}, fmt.Errorf("failed to insert task: %w", err)
	}
	return created, nil
}

func (r *taskRepositoryImpl) get(ctx context.Context, id string, lock bool) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	t, err := scanTask(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

// GetByID implements task.TaskRepository.
func (r *taskRepositoryImpl) GetByID(ctx context.Context, id string) (task.Task, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate implements task.TaskRepository.
func (r *taskRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (task.Task, error) {
	return r.get(ctx, id, true)
}

// Update implements task.TaskRepository. created_date and employee_id are never written.
func (r *taskRepositoryImpl) Update(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	fileName, storageRef, uploadedAt := attachmentArgs(t.Attachment)

	query := `
		UPDATE tasks SET
			description = $1,
			due_date = $2,
			status = $3,
			priority = $4,
			completed_date = $5,
			review_status = $6,
			reviewed_by = $7,
			reviewed_at = $8,
			review_notes = $9,
			rejection_count = $10,
			attachment_file_name = $11,
			attachment_uploaded_at = $12,
			attachment_storage_ref = $13,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $14 AND version = $15
		RETURNING ` + taskColumns

	updated, err := scanTask(q.QueryRow(ctx, query,
		t.Description, t.DueDate, string(t.Status), string(t.Priority), t.CompletedDate,
		string(t.ReviewStatus), t.ReviewedBy, t.ReviewedAt, t.ReviewNotes, t.RejectionCount,
		fileName, uploadedAt, storageRef,
		t.ID, t.Version,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the row is gone or the version moved on.
			if _, getErr := r.GetByID(ctx, t.ID); errors.Is(getErr, task.ErrTaskNotFound) {
				return task.Task{}, task.ErrTaskNotFound
			}
			return task.Task{}, task.ErrConcurrentUpdate
		}
		return task.Task{}, fmt.Errorf("failed to update task: %w", err)
	}
	return updated, nil
}

// ListByEmployees implements task.TaskRepository.
func (r *taskRepositoryImpl) ListByEmployees(ctx context.Context, employeeIDs []string, filter task.TaskFilter) ([]task.Task, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	where := []string{"employee_id = ANY($1::uuid[])"}
	args := []interface{}{employeeIDs}
	argIdx := 2

	if filter.EmployeeID != "" {
		where = append(where, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.ReviewStatus != "" {
		where = append(where, fmt.Sprintf("review_status = $%d", argIdx))
		args = append(args, filter.ReviewStatus)
		argIdx++
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_date, id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// MarkEvaluatedThrough implements task.TaskRepository.
func (r *taskRepositoryImpl) MarkEvaluatedThrough(ctx context.Context, employeeID string, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE tasks SET is_evaluated = TRUE, updated_at = NOW()
		WHERE employee_id = $1 AND created_date <= $2 AND NOT is_evaluated
	`, employeeID, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to mark tasks evaluated: %w", err)
	}
	return tag.RowsAffected(), nil
}
