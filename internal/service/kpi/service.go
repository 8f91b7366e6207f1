package kpi

import (
	"context"
	"fmt"
	"strings"

	"github.com/momentum-hr/performance-backend-go/internal/domain/kpi"
	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/service/authz"
)

type KPIServiceImpl struct {
	kpi.KPIRepository
}

func NewKPIService(repo kpi.KPIRepository) kpi.KPIService {
	return &KPIServiceImpl{KPIRepository: repo}
}

// List implements kpi.KPIService.
func (s *KPIServiceImpl) List(ctx context.Context, activeOnly bool) ([]kpi.KPIResponse, error) {
	kpis, err := s.KPIRepository.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list kpis: %w", err)
	}
	out := make([]kpi.KPIResponse, 0, len(kpis))
	for _, k := range kpis {
		out = append(out, kpi.ToResponse(k))
	}
	return out, nil
}

// Create implements kpi.KPIService.
func (s *KPIServiceImpl) Create(ctx context.Context, actor user.Actor, req kpi.CreateKPIRequest) (kpi.KPIResponse, error) {
	if err := req.Validate(); err != nil {
		return kpi.KPIResponse{}, err
	}
	if err := authz.RequirePermission(actor, user.PermissionKPIManage); err != nil {
		return kpi.KPIResponse{}, err
	}

	name := strings.TrimSpace(req.Name)
	exists, err := s.KPIRepository.ExistsByName(ctx, name)
	if err != nil {
		return kpi.KPIResponse{}, fmt.Errorf("failed to check kpi name: %w", err)
	}
	if exists {
		return kpi.KPIResponse{}, kpi.ErrKPINameExists
	}

	created, err := s.KPIRepository.Create(ctx, kpi.KPI{
		Name:        name,
		Type:        strings.TrimSpace(req.Type),
		Description: req.Description,
		TargetValue: req.TargetValue,
		IsActive:    true,
	})
	if err != nil {
		return kpi.KPIResponse{}, fmt.Errorf("failed to create kpi: %w", err)
	}
	return kpi.ToResponse(created), nil
}

// Update implements kpi.KPIService.
func (s *KPIServiceImpl) Update(ctx context.Context, actor user.Actor, id string, req kpi.UpdateKPIRequest) (kpi.KPIResponse, error) {
	if err := req.Validate(); err != nil {
		return kpi.KPIResponse{}, err
	}
	if err := authz.RequirePermission(actor, user.PermissionKPIManage); err != nil {
		return kpi.KPIResponse{}, err
	}

	current, err := s.KPIRepository.GetByID(ctx, id)
	if err != nil {
		return kpi.KPIResponse{}, fmt.Errorf("failed to get kpi: %w", err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if !strings.EqualFold(name, current.Name) {
			exists, err := s.KPIRepository.ExistsByName(ctx, name)
			if err != nil {
				return kpi.KPIResponse{}, fmt.Errorf("failed to check kpi name: %w", err)
			}
			if exists {
				return kpi.KPIResponse{}, kpi.ErrKPINameExists
			}
		}
		current.Name = name
	}
	if req.Type != nil {
		current.Type = strings.TrimSpace(*req.Type)
	}
	if req.Description != nil {
		current.Description = req.Description
	}
	if req.TargetValue != nil {
		current.TargetValue = *req.TargetValue
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	updated, err := s.KPIRepository.Update(ctx, current)
	if err != nil {
		return kpi.KPIResponse{}, fmt.Errorf("failed to update kpi: %w", err)
	}
	return kpi.ToResponse(updated), nil
}
