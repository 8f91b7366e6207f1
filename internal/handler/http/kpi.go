package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/momentum-hr/performance-backend-go/internal/domain/kpi"
	"github.com/momentum-hr/performance-backend-go/internal/handler/http/response"
)

type KPIHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type kpiHandlerImpl struct {
	kpiService kpi.KPIService
}

func NewKPIHandler(kpiService kpi.KPIService) KPIHandler {
	return &kpiHandlerImpl{kpiService: kpiService}
}

// List handles GET /kpis; ?all=true includes inactive entries
func (h *kpiHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") != "true"

	result, err := h.kpiService.List(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create handles POST /kpis
func (h *kpiHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	var req kpi.CreateKPIRequest
	if !decodeJSON(w, r, &req, "CreateKPI") {
		return
	}

	result, err := h.kpiService.Create(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "KPI created successfully", result)
}

// Update handles PUT /kpis/{id}
func (h *kpiHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	var req kpi.UpdateKPIRequest
	if !decodeJSON(w, r, &req, "UpdateKPI") {
		return
	}

	result, err := h.kpiService.Update(r.Context(), caller, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "KPI updated successfully", result)
}
