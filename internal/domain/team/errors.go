package team

import "errors"

var (
	ErrMemberNotFound = errors.New("team member not found")
	ErrAlreadyMember  = errors.New("employee is already on your team")
	ErrCannotAddSelf  = errors.New("cannot add yourself to your own team")
	ErrNotAssignable  = errors.New("only employee accounts can be added to a team")
)
