package kpi

import "errors"

var (
	ErrKPINotFound   = errors.New("kpi not found")
	ErrKPINameExists = errors.New("kpi with this name already exists")
)
