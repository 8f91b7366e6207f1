package metrics

import (
	"github.com/momentum-hr/performance-backend-go/internal/pkg/validator"
)

type MetricsQuery struct {
	PeriodDays          int  `json:"period_days,omitempty" validate:"gte=0,lte=3660"`
	SinceLastEvaluation bool `json:"since_last_evaluation,omitempty"`
}

func (q *MetricsQuery) Validate() error {
	return validator.Struct(q).Err()
}

func (q MetricsQuery) Options() ComplianceOptions {
	return ComplianceOptions{
		PeriodDays:          q.PeriodDays,
		SinceLastEvaluation: q.SinceLastEvaluation,
	}
}
