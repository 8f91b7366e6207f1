package task

import (
	"time"
)

type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusAccepted   Status = "Accepted"
	StatusCancelled  Status = "Cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusAccepted, StatusCancelled:
		return true
	}
	return false
}

// IsEmployeeSettable reports whether an employee may move a task into s.
// Accepted is only reachable through a review.
func (s Status) IsEmployeeSettable() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ReviewStatus has no rejected state: a rejection reopens the task as
// Pending Review and is visible through RejectionCount.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "Pending Review"
	ReviewAccepted ReviewStatus = "Accepted"
)

func (r ReviewStatus) IsValid() bool {
	switch r {
	case ReviewPending, ReviewAccepted:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

type ReviewAction string

const (
	ReviewActionAccept ReviewAction = "accept"
	ReviewActionReject ReviewAction = "reject"
)

func (a ReviewAction) IsValid() bool {
	return a == ReviewActionAccept || a == ReviewActionReject
}

// Attachment is metadata only; the bytes live with the storage collaborator.
type Attachment struct {
	FileName   string
	UploadedAt time.Time
	StorageRef string
}

// Task is a backlog item owned by one employee.
type Task struct {
	ID             string
	EmployeeID     string
	AssignedBy     string
	Description    string
	DueDate        time.Time
	Status         Status
	Priority       Priority
	CreatedDate    time.Time
	CompletedDate  *time.Time
	IsEvaluated    bool
	ReviewStatus   ReviewStatus
	ReviewedBy     *string
	ReviewedAt     *time.Time
	ReviewNotes    *string
	RejectionCount int
	Attachment     *Attachment
	Version        int
	UpdatedAt      time.Time
}

// IsAccepted reports whether the task passed review and is frozen.
func (t Task) IsAccepted() bool {
	return t.ReviewStatus == ReviewAccepted || t.Status == StatusAccepted
}
