package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user account not found")
	ErrUsernameExists          = errors.New("username already taken")
	ErrInvalidRole             = errors.New("invalid role")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrNotTeamManager          = errors.New("employee is not an active member of your team")
)
