package user

import (
	"context"
	"time"
)

type UserRepository interface {
	Create(ctx context.Context, account UserAccount) (UserAccount, error)
	GetByID(ctx context.Context, id string) (UserAccount, error)
	GetByUsername(ctx context.Context, username string) (UserAccount, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (UserAccount, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}
