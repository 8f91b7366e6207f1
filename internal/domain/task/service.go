package task

import (
	"context"

	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
)

type TaskService interface {
	// Create assigns a task to an active member of the actor's team
	Create(ctx context.Context, actor user.Actor, req CreateTaskRequest) (TaskResponse, error)

	// UpdateStatus is the owner's progress update
	UpdateStatus(ctx context.Context, actor user.Actor, taskID string, req UpdateStatusRequest) (TaskResponse, error)

	// Review accepts or rejects a completed task of a team member
	Review(ctx context.Context, actor user.Actor, taskID string, req ReviewTaskRequest) (TaskResponse, error)

	AttachFile(ctx context.Context, actor user.Actor, taskID string, req AttachFileRequest) (TaskResponse, error)
	DetachFile(ctx context.Context, actor user.Actor, taskID string) (TaskResponse, error)

	Get(ctx context.Context, actor user.Actor, taskID string) (TaskResponse, error)
	ListMine(ctx context.Context, actor user.Actor, filter TaskFilter) ([]TaskResponse, error)
	ListTeam(ctx context.Context, actor user.Actor, filter TaskFilter) ([]TaskResponse, error)
}
