package evaluation

import "errors"

var (
	ErrEvaluationNotFound   = errors.New("evaluation not found")
	ErrEvaluationOutOfOrder = errors.New("evaluation date must be after the latest evaluation of this employee")
	ErrDuplicatePeriod      = errors.New("an evaluation for this period already exists")
	ErrDuplicateKPI         = errors.New("a kpi may only be scored once per evaluation")
	ErrFutureDate           = errors.New("evaluation date cannot be in the future")
)
