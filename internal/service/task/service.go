package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/momentum-hr/performance-backend-go/internal/domain/metrics"
	"github.com/momentum-hr/performance-backend-go/internal/domain/task"
	"github.com/momentum-hr/performance-backend-go/internal/domain/team"
	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/database"
	"github.com/momentum-hr/performance-backend-go/internal/service/authz"
)

type TaskServiceImpl struct {
	tx database.Transactor
	task.TaskRepository
	teams team.TeamRepository
	authz *authz.Authorizer
	now   func() time.Time
}

func NewTaskService(tx database.Transactor, repo task.TaskRepository, teams team.TeamRepository, authorizer *authz.Authorizer) task.TaskService {
	return &TaskServiceImpl{
		tx:             tx,
		TaskRepository: repo,
		teams:          teams,
		authz:          authorizer,
		now:            time.Now,
	}
}

func (s *TaskServiceImpl) today() time.Time {
	return metrics.Day(s.now())
}

// Create implements task.TaskService.
func (s *TaskServiceImpl) Create(ctx context.Context, actor user.Actor, req task.CreateTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}
	if err := s.authz.RequireTeamManager(ctx, actor, req.EmployeeID, user.PermissionTaskAssign); err != nil {
		return task.TaskResponse{}, err
	}

	today := s.today()
	created, err := s.TaskRepository.Create(ctx, task.Task{
		EmployeeID:   req.EmployeeID,
		AssignedBy:   actor.AccountID,
		Description:  strings.TrimSpace(req.Description),
		DueDate:      req.ParsedDueDate,
		Status:       task.StatusNotStarted,
		Priority:     task.Priority(req.Priority),
		CreatedDate:  today,
		ReviewStatus: task.ReviewPending,
	})
	if err != nil {
		return task.TaskResponse{}, fmt.Errorf("failed to create task: %w", err)
	}

	return task.ToResponse(created, today), nil
}

// UpdateStatus implements task.TaskService.
func (s *TaskServiceImpl) UpdateStatus(ctx context.Context, actor user.Actor, taskID string, req task.UpdateStatusRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}
	if err := authz.RequirePermission(actor, user.PermissionTaskUpdateOwn); err != nil {
		return task.TaskResponse{}, err
	}

	today := s.today()
	updated, err := s.mutate(ctx, taskID, func(_ context.Context, t task.Task) (task.Task, error) {
		if t.EmployeeID != actor.EmployeeID {
			return t, task.ErrNotTaskOwner
		}
		return task.ApplyStatus(t, task.Status(req.Status), today)
	})
	if err != nil {
		return task.TaskResponse{}, err
	}
	return task.ToResponse(updated, today), nil
}

// Review implements task.TaskService.
func (s *TaskServiceImpl) Review(ctx context.Context, actor user.Actor, taskID string, req task.ReviewTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}
	action := task.ReviewAction(req.Action)
	if !action.IsValid() {
		return task.TaskResponse{}, task.ErrInvalidReviewAction
	}

	now := s.now()
	updated, err := s.mutate(ctx, taskID, func(ctx context.Context, t task.Task) (task.Task, error) {
		if err := s.authz.RequireTeamManager(ctx, actor, t.EmployeeID, user.PermissionTaskReview); err != nil {
			return t, err
		}
		return task.ApplyReview(t, action, actor.AccountID, strings.TrimSpace(req.Notes), now)
	})
	if err != nil {
		return task.TaskResponse{}, err
	}
	return task.ToResponse(updated, metrics.Day(now)), nil
}

// AttachFile implements task.TaskService.
func (s *TaskServiceImpl) AttachFile(ctx context.Context, actor user.Actor, taskID string, req task.AttachFileRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	now := s.now()
	updated, err := s.mutate(ctx, taskID, func(_ context.Context, t task.Task) (task.Task, error) {
		if t.EmployeeID != actor.EmployeeID {
			return t, task.ErrNotTaskOwner
		}
		return task.AttachFile(t, task.Attachment{
			FileName:   req.FileName,
			UploadedAt: now,
			StorageRef: req.StorageRef,
		})
	})
	if err != nil {
		return task.TaskResponse{}, err
	}
	return task.ToResponse(updated, metrics.Day(now)), nil
}

// DetachFile implements task.TaskService.
func (s *TaskServiceImpl) DetachFile(ctx context.Context, actor user.Actor, taskID string) (task.TaskResponse, error) {
	today := s.today()
	updated, err := s.mutate(ctx, taskID, func(_ context.Context, t task.Task) (task.Task, error) {
		if t.EmployeeID != actor.EmployeeID {
			return t, task.ErrNotTaskOwner
		}
		return task.DetachFile(t)
	})
	if err != nil {
		return task.TaskResponse{}, err
	}
	return task.ToResponse(updated, today), nil
}

// Get implements task.TaskService.
func (s *TaskServiceImpl) Get(ctx context.Context, actor user.Actor, taskID string) (task.TaskResponse, error) {
	t, err := s.TaskRepository.GetByID(ctx, taskID)
	if err != nil {
		return task.TaskResponse{}, fmt.Errorf("failed to get task: %w", err)
	}
	if err := s.authz.CanView(ctx, actor, t.EmployeeID); err != nil {
		return task.TaskResponse{}, err
	}
	return task.ToResponse(t, s.today()), nil
}

// ListMine implements task.TaskService.
func (s *TaskServiceImpl) ListMine(ctx context.Context, actor user.Actor, filter task.TaskFilter) ([]task.TaskResponse, error) {
	filter.EmployeeID = ""
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	tasks, err := s.TaskRepository.ListByEmployees(ctx, []string{actor.EmployeeID}, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return s.toResponses(tasks), nil
}

// ListTeam implements task.TaskService.
func (s *TaskServiceImpl) ListTeam(ctx context.Context, actor user.Actor, filter task.TaskFilter) ([]task.TaskResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if err := authz.RequirePermission(actor, user.PermissionTeamManage); err != nil {
		return nil, err
	}

	members, err := s.teams.ListActive(ctx, actor.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team: %w", err)
	}
	ids := make([]string, 0, len(members))
	for _, m := range members {
		if filter.EmployeeID == "" || filter.EmployeeID == m.EmployeeID {
			ids = append(ids, m.EmployeeID)
		}
	}
	if filter.EmployeeID != "" && len(ids) == 0 {
		return nil, user.ErrNotTeamManager
	}
	if len(ids) == 0 {
		return []task.TaskResponse{}, nil
	}

	tasks, err := s.TaskRepository.ListByEmployees(ctx, ids, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list team tasks: %w", err)
	}
	return s.toResponses(tasks), nil
}

// mutate loads the task under a row lock, applies fn and writes the result
// back with a version check, all in one transaction.
func (s *TaskServiceImpl) mutate(ctx context.Context, taskID string, fn func(ctx context.Context, t task.Task) (task.Task, error)) (task.Task, error) {
	var updated task.Task
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.TaskRepository.GetByIDForUpdate(ctx, taskID)
		if err != nil {
			return fmt.Errorf("failed to get task: %w", err)
		}
		next, err := fn(ctx, current)
		if err != nil {
			return err
		}
		updated, err = s.TaskRepository.Update(ctx, next)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		return nil
	})
	return updated, err
}

func (s *TaskServiceImpl) toResponses(tasks []task.Task) []task.TaskResponse {
	today := s.today()
	out := make([]task.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, task.ToResponse(t, today))
	}
	return out
}
