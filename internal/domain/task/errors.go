package task

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrInvalidTransition   = errors.New("invalid task transition")
	ErrNotTaskOwner        = errors.New("task does not belong to you")
	ErrInvalidStatus       = errors.New("invalid task status")
	ErrInvalidReviewAction = errors.New("review action must be accept or reject")
	ErrConcurrentUpdate    = errors.New("task was modified concurrently, reload and retry")
	ErrUnsupportedFile     = errors.New("attachment type is not allowed")
	ErrFileTooLarge        = errors.New("attachment exceeds the size limit")
	ErrForeignAttachment   = errors.New("attachment must be stored under the task")

	ErrTaskAccepted  = fmt.Errorf("%w: task has been accepted and can no longer be changed", ErrInvalidTransition)
	ErrTaskCancelled = fmt.Errorf("%w: task has been cancelled", ErrInvalidTransition)
	ErrNotReviewable = fmt.Errorf("%w: only completed tasks can be reviewed", ErrInvalidTransition)
	ErrNoAttachment  = fmt.Errorf("%w: task has no attachment", ErrInvalidTransition)
)
