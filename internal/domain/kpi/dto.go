package kpi

import (
	"github.com/momentum-hr/performance-backend-go/internal/pkg/validator"
)

type CreateKPIRequest struct {
	Name        string  `json:"name" validate:"required,max=150"`
	Type        string  `json:"type" validate:"required,max=50"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	TargetValue float64 `json:"target_value" validate:"gt=0"`
}

func (r *CreateKPIRequest) Validate() error {
	errs := validator.Struct(r)
	if validator.IsEmpty(r.Name) && r.Name != "" {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be blank",
		})
	}
	return errs.Err()
}

// UpdateKPIRequest is a partial update; nil fields are left unchanged.
type UpdateKPIRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	Type        *string  `json:"type,omitempty" validate:"omitempty,min=1,max=50"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	TargetValue *float64 `json:"target_value,omitempty" validate:"omitempty,gt=0"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

func (r *UpdateKPIRequest) Validate() error {
	return validator.Struct(r).Err()
}

type KPIResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Description *string `json:"description,omitempty"`
	TargetValue float64 `json:"target_value"`
	IsActive    bool    `json:"is_active"`
}

func ToResponse(k KPI) KPIResponse {
	return KPIResponse{
		ID:          k.ID,
		Name:        k.Name,
		Type:        k.Type,
		Description: k.Description,
		TargetValue: k.TargetValue,
		IsActive:    k.IsActive,
	}
}
