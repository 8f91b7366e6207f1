package auth

import "github.com/momentum-hr/performance-backend-go/internal/pkg/validator"

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validator.Struct(r).Err()
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresAt    int64  `json:"expires_at"`
	AccountID    string `json:"account_id"`
	EmployeeID   string `json:"employee_id"`
	Role         int    `json:"role"`
	IsFirstLogin bool   `json:"is_first_login"`
}
