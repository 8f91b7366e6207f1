package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `id, employee_id, username, password_hash, role, is_first_login, last_login, created_at, updated_at`

func scanUser(row pgx.Row) (user.UserAccount, error) {
	var u user.UserAccount
	var role int
	err := row.Scan(
		&u.ID,
		&u.EmployeeID,
		&u.Username,
		&u.PasswordHash,
		&role,
		&u.IsFirstLogin,
		&u.LastLogin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	u.Role = user.Role(role)
	return u, err
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, account user.UserAccount) (user.UserAccount, error) {
	q := GetQuerier(ctx, r.db)

	if account.ID == "" {
		account.ID = newID()
	}

	query := `
		INSERT INTO user_accounts (id, employee_id, username, password_hash, role, is_first_login)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	created, err := scanUser(q.QueryRow(ctx, query,
		account.ID,
		account.EmployeeID,
		account.Username,
		account.PasswordHash,
		int(account.Role),
		account.IsFirstLogin,
	))
	if err != nil {
		if isUniqueViolation(err, "user_accounts_username_key") {
			return user.UserAccount{}, user.ErrUsernameExists
		}
		return user.UserAccount{}, fmt.Errorf("failed to insert user account: %w", err)
	}
	return created, nil
}

func (r *userRepositoryImpl) getOne(ctx context.Context, where string, arg interface{}) (user.UserAccount, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM user_accounts WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.UserAccount{}, user.ErrUserNotFound
		}
		return user.UserAccount{}, fmt.Errorf("failed to get user account: %w", err)
	}
	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.UserAccount, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetByUsername implements user.UserRepository.
func (r *userRepositoryImpl) GetByUsername(ctx context.Context, username string) (user.UserAccount, error) {
	return r.getOne(ctx, "username = $1", username)
}

// GetByEmployeeID implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (user.UserAccount, error) {
	return r.getOne(ctx, "employee_id = $1", employeeID)
}

// ExistsByUsername implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM user_accounts WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateLastLogin implements user.UserRepository.
func (r *userRepositoryImpl) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE user_accounts SET last_login = $1, updated_at = NOW() WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
