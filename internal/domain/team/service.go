package team

import (
	"context"

	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
)

type TeamService interface {
	AddMember(ctx context.Context, actor user.Actor, req AddMemberRequest) (TeamMemberResponse, error)
	RemoveMember(ctx context.Context, actor user.Actor, employeeID string) error
	ListMembers(ctx context.Context, actor user.Actor) ([]TeamMemberResponse, error)
	SearchAvailable(ctx context.Context, actor user.Actor, query string) ([]AvailableEmployee, error)
}
