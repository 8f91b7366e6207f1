package evaluation

import (
	"time"

	"github.com/momentum-hr/performance-backend-go/internal/pkg/validator"
)

type KPIScoreInput struct {
	KPIID string   `json:"kpi_id" validate:"required"`
	Value float64  `json:"value" validate:"gte=0"`
	// Target defaults to the catalog target when omitted
	Target *float64 `json:"target,omitempty" validate:"omitempty,gt=0"`
	Notes  *string  `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type CreateEvaluationRequest struct {
	EmployeeID     string          `json:"employee_id" validate:"required"`
	EvaluationDate string          `json:"evaluation_date" validate:"required"`
	Period         string          `json:"period" validate:"required,max=50"`
	Notes          *string         `json:"notes,omitempty" validate:"omitempty,max=5000"`
	KPIs           []KPIScoreInput `json:"kpis" validate:"dive"`

	ParsedEvaluationDate time.Time `json:"-"`
}

func (r *CreateEvaluationRequest) Validate() error {
	errs := validator.Struct(r)

	if !validator.IsEmpty(r.EmployeeID) && !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	if validator.IsEmpty(r.Period) && r.Period != "" {
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: "period must not be blank",
		})
	}
	if !validator.IsEmpty(r.EvaluationDate) {
		date, ok := validator.IsValidDate(r.EvaluationDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "evaluation_date",
				Message: "evaluation_date must be in YYYY-MM-DD format",
			})
		} else {
			r.ParsedEvaluationDate = date
		}
	}

	seen := make(map[string]bool, len(r.KPIs))
	for _, k := range r.KPIs {
		if k.KPIID == "" {
			continue
		}
		if !validator.IsValidUUID(k.KPIID) {
			errs = append(errs, validator.ValidationError{
				Field:   "kpi_id",
				Message: "kpi_id must be a valid UUID",
			})
			continue
		}
		if seen[k.KPIID] {
			errs = append(errs, validator.ValidationError{
				Field:   "kpis",
				Message: ErrDuplicateKPI.Error(),
			})
		}
		seen[k.KPIID] = true
	}

	return errs.Err()
}

type EvaluationKPIResponse struct {
	KPIID   string  `json:"kpi_id"`
	KPIName string  `json:"kpi_name,omitempty"`
	Value   float64 `json:"value"`
	Target  float64 `json:"target"`
	Notes   *string `json:"notes,omitempty"`
}

type EvaluationResponse struct {
	ID                 string                  `json:"id"`
	EmployeeID         string                  `json:"employee_id"`
	CreatedBy          string                  `json:"created_by"`
	EvaluationDate     string                  `json:"evaluation_date"`
	Period             string                  `json:"period"`
	Notes              *string                 `json:"notes,omitempty"`
	WindowStart        *string                 `json:"window_start,omitempty"`
	AttendanceRate     *float64                `json:"attendance_rate"`
	ComplianceRate     *float64                `json:"compliance_rate"`
	OverallPerformance *float64                `json:"overall_performance"`
	KPIAchievement     float64                 `json:"kpi_achievement"`
	KPIs               []EvaluationKPIResponse `json:"kpis"`
	ClosedOutAt        *string                 `json:"closed_out_at,omitempty"`
	CreatedAt          string                  `json:"created_at"`
}

type CloseOutResponse struct {
	EvaluationID     string `json:"evaluation_id"`
	ClosedOutAt      string `json:"closed_out_at"`
	AttendanceMarked int64  `json:"attendance_marked"`
	TasksMarked      int64  `json:"tasks_marked"`
}

// ToResponse maps an evaluation and its KPI rows. achievement is computed by the caller.
func ToResponse(e Evaluation, kpis []EvaluationKPI, achievement float64) EvaluationResponse {
	resp := EvaluationResponse{
		ID:                 e.ID,
		EmployeeID:         e.EmployeeID,
		CreatedBy:          e.CreatedBy,
		EvaluationDate:     e.EvaluationDate.Format(validator.DateLayout),
		Period:             e.Period,
		Notes:              e.Notes,
		AttendanceRate:     e.AttendanceRate,
		ComplianceRate:     e.ComplianceRate,
		OverallPerformance: e.OverallPerformance,
		KPIAchievement:     achievement,
		KPIs:               make([]EvaluationKPIResponse, 0, len(kpis)),
		CreatedAt:          e.CreatedAt.Format(time.RFC3339),
	}
	if e.WindowStart != nil {
		s := e.WindowStart.Format(validator.DateLayout)
		resp.WindowStart = &s
	}
	if e.ClosedOutAt != nil {
		s := e.ClosedOutAt.Format(time.RFC3339)
		resp.ClosedOutAt = &s
	}
	for _, k := range kpis {
		row := EvaluationKPIResponse{
			KPIID:  k.KPIID,
			Value:  k.Value,
			Target: k.Target,
			Notes:  k.Notes,
		}
		if k.KPIName != nil {
			row.KPIName = *k.KPIName
		}
		resp.KPIs = append(resp.KPIs, row)
	}
	return resp
}
