package kpi

import "time"

// KPI is a catalog entry evaluations score employees against.
type KPI struct {
	ID          string
	Name        string
	Type        string
	Description *string
	TargetValue float64
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
