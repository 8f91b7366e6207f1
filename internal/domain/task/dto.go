package task

import (
	"time"

	"github.com/momentum-hr/performance-backend-go/internal/pkg/validator"
)

type CreateTaskRequest struct {
	EmployeeID  string `json:"employee_id" validate:"required"`
	Description string `json:"description" validate:"required,max=2000"`
	DueDate     string `json:"due_date" validate:"required"`
	Priority    string `json:"priority" validate:"required,oneof=Low Medium High Critical"`

	ParsedDueDate time.Time `json:"-"`
}

func (r *CreateTaskRequest) Validate() error {
	errs := validator.Struct(r)

	if !validator.IsEmpty(r.EmployeeID) && !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	if validator.IsEmpty(r.Description) && r.Description != "" {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not be blank",
		})
	}
	if !validator.IsEmpty(r.DueDate) {
		dueDate, ok := validator.IsValidDate(r.DueDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "due_date",
				Message: "due_date must be in YYYY-MM-DD format",
			})
		} else {
			r.ParsedDueDate = dueDate
		}
	}

	return errs.Err()
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof='Not Started' 'In Progress' Completed Cancelled"`
}

func (r *UpdateStatusRequest) Validate() error {
	return validator.Struct(r).Err()
}

type ReviewTaskRequest struct {
	Action string `json:"action" validate:"required"`
	Notes  string `json:"notes" validate:"max=2000"`
}

// Validate checks shape only; an unknown action is reported as ErrInvalidReviewAction.
func (r *ReviewTaskRequest) Validate() error {
	return validator.Struct(r).Err()
}

type AttachFileRequest struct {
	FileName   string `json:"file_name" validate:"required,max=255"`
	StorageRef string `json:"storage_ref" validate:"required,max=1024"`
}

func (r *AttachFileRequest) Validate() error {
	return validator.Struct(r).Err()
}

type TaskFilter struct {
	EmployeeID   string `json:"employee_id,omitempty"`
	Status       string `json:"status,omitempty"`
	ReviewStatus string `json:"review_status,omitempty"`
}

func (f *TaskFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != "" && !validator.IsValidUUID(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	if f.Status != "" && !Status(f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "unknown task status",
		})
	}
	if f.ReviewStatus != "" && !ReviewStatus(f.ReviewStatus).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "review_status",
			Message: "unknown review status",
		})
	}

	return errs.Err()
}

type AttachmentResponse struct {
	FileName   string `json:"file_name"`
	UploadedAt string `json:"uploaded_at"`
	StorageRef string `json:"storage_ref"`
}

type TaskResponse struct {
	ID             string              `json:"id"`
	EmployeeID     string              `json:"employee_id"`
	AssignedBy     string              `json:"assigned_by"`
	Description    string              `json:"description"`
	DueDate        string              `json:"due_date"`
	Status         string              `json:"status"`
	Priority       string              `json:"priority"`
	CreatedDate    string              `json:"created_date"`
	CompletedDate  *string             `json:"completed_date,omitempty"`
	IsEvaluated    bool                `json:"is_evaluated"`
	ReviewStatus   string              `json:"review_status"`
	ReviewedBy     *string             `json:"reviewed_by,omitempty"`
	ReviewedAt     *string             `json:"reviewed_at,omitempty"`
	ReviewNotes    *string             `json:"review_notes,omitempty"`
	RejectionCount int                 `json:"rejection_count"`
	Attachment     *AttachmentResponse `json:"attachment,omitempty"`
	IsOverdue      bool                `json:"is_overdue"`
}

// ToResponse maps t for the API; today drives the overdue flag.
func ToResponse(t Task, today time.Time) TaskResponse {
	resp := TaskResponse{
		ID:             t.ID,
		EmployeeID:     t.EmployeeID,
		AssignedBy:     t.AssignedBy,
		Description:    t.Description,
		DueDate:        t.DueDate.Format(validator.DateLayout),
		Status:         string(t.Status),
		Priority:       string(t.Priority),
		CreatedDate:    t.CreatedDate.Format(validator.DateLayout),
		IsEvaluated:    t.IsEvaluated,
		ReviewStatus:   string(t.ReviewStatus),
		ReviewedBy:     t.ReviewedBy,
		ReviewNotes:    t.ReviewNotes,
		RejectionCount: t.RejectionCount,
	}
	if t.CompletedDate != nil {
		s := t.CompletedDate.Format(validator.DateLayout)
		resp.CompletedDate = &s
	}
	if t.ReviewedAt != nil {
		s := t.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &s
	}
	if t.Attachment != nil {
		resp.Attachment = &AttachmentResponse{
			FileName:   t.Attachment.FileName,
			UploadedAt: t.Attachment.UploadedAt.Format(time.RFC3339),
			StorageRef: t.Attachment.StorageRef,
		}
	}
	open := t.Status == StatusNotStarted || t.Status == StatusInProgress
	resp.IsOverdue = open && t.DueDate.Before(today)
	return resp
}
