package task

import (
	"path"
	"strings"
	"time"
)

// ApplyStatus moves t to next on behalf of its owner. today is the calendar
// day used for CompletedDate.
func ApplyStatus(t Task, next Status, today time.Time) (Task, error) {
	if !next.IsEmployeeSettable() {
		return t, ErrInvalidStatus
	}
	if t.IsAccepted() {
		return t, ErrTaskAccepted
	}
	if t.Status == StatusCancelled && next != StatusCancelled {
		return t, ErrTaskCancelled
	}
	if t.Status == next {
		return t, nil
	}

	switch {
	case next == StatusCompleted:
		completed := today
		t.CompletedDate = &completed
		t.ReviewStatus = ReviewPending
	case t.Status == StatusCompleted:
		t.CompletedDate = nil
		t.ReviewStatus = ReviewPending
	}
	t.Status = next
	return t, nil
}

// ApplyReview records a supervisor decision on a completed task.
// A rejection reopens the task and puts it back in the review queue.
func ApplyReview(t Task, action ReviewAction, reviewerID, notes string, now time.Time) (Task, error) {
	if !action.IsValid() {
		return t, ErrInvalidReviewAction
	}
	if t.IsAccepted() {
		return t, ErrTaskAccepted
	}
	if t.Status != StatusCompleted {
		return t, ErrNotReviewable
	}

	reviewedAt := now
	t.ReviewedBy = &reviewerID
	t.ReviewedAt = &reviewedAt
	t.ReviewNotes = nil
	if notes != "" {
		t.ReviewNotes = &notes
	}

	switch action {
	case ReviewActionAccept:
		t.ReviewStatus = ReviewAccepted
		t.Status = StatusAccepted
	case ReviewActionReject:
		t.ReviewStatus = ReviewPending
		t.Status = StatusInProgress
		t.CompletedDate = nil
		t.RejectionCount++
	}
	return t, nil
}

// AttachmentPrefix is the storage namespace owned by a task.
func AttachmentPrefix(taskID string) string {
	return "tasks/" + taskID + "/"
}

// OwnsStorageRef reports whether ref names a blob inside the task's namespace.
func OwnsStorageRef(taskID, ref string) bool {
	prefix := AttachmentPrefix(taskID)
	return taskID != "" &&
		len(ref) > len(prefix) &&
		strings.HasPrefix(ref, prefix) &&
		path.Clean(ref) == ref
}

func AttachFile(t Task, attachment Attachment) (Task, error) {
	if t.IsAccepted() {
		return t, ErrTaskAccepted
	}
	if !OwnsStorageRef(t.ID, attachment.StorageRef) {
		return t, ErrForeignAttachment
	}
	t.Attachment = &attachment
	return t, nil
}

func DetachFile(t Task) (Task, error) {
	if t.IsAccepted() {
		return t, ErrTaskAccepted
	}
	if t.Attachment == nil {
		return t, ErrNoAttachment
	}
	t.Attachment = nil
	return t, nil
}
