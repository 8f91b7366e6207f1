package evaluation

import (
	"context"

	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
)

type EvaluationService interface {
	// Create writes the evaluation with its frozen rate snapshot and KPI rows
	Create(ctx context.Context, actor user.Actor, req CreateEvaluationRequest) (EvaluationResponse, error)

	// CloseOut folds the evaluated window into history. Safe to repeat.
	CloseOut(ctx context.Context, actor user.Actor, evaluationID string) (CloseOutResponse, error)

	Get(ctx context.Context, actor user.Actor, evaluationID string) (EvaluationResponse, error)
	ListByEmployee(ctx context.Context, actor user.Actor, employeeID string) ([]EvaluationResponse, error)
}
