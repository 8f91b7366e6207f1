package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/momentum-hr/performance-backend-go/internal/domain/auth"
	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
	now func() time.Time
}

func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		Service:        jwtService,
		now:            time.Now,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	account, err := a.UserRepository.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get account by username: %w", err)
	}

	if account.PasswordHash == "" {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(jwt.Claims{
		AccountID:    account.ID,
		EmployeeID:   account.EmployeeID,
		Role:         account.Role,
		IsFirstLogin: account.IsFirstLogin,
	})
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	// A failed timestamp write does not block the login.
	if err := a.UserRepository.UpdateLastLogin(ctx, account.ID, a.now()); err != nil {
		slog.Warn("failed to update last login", "account_id", account.ID, "error", err)
	}

	return auth.TokenResponse{
		AccessToken:  token,
		TokenType:    "Bearer",
		ExpiresAt:    expiresAt,
		AccountID:    account.ID,
		EmployeeID:   account.EmployeeID,
		Role:         int(account.Role),
		IsFirstLogin: account.IsFirstLogin,
	}, nil
}
