package dashboard

import "errors"

var (
	ErrInvalidStatusFilter = errors.New("status filter must be one of: Excellent, Good, Needs Improvement, Poor")
)
