package http

import (
	"net/http"

	"github.com/momentum-hr/performance-backend-go/internal/domain/dashboard"
	"github.com/momentum-hr/performance-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// Team handles GET /dashboard/team?department=&status=
	Team(w http.ResponseWriter, r *http.Request)
	// Me handles GET /dashboard/me
	Me(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

func (h *dashboardHandlerImpl) Team(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	filter := dashboard.TeamFilter{
		Department: r.URL.Query().Get("department"), // exact match
		Status:     r.URL.Query().Get("status"),     // e.g. "Needs Improvement"
	}

	result, err := h.dashboardService.TeamDashboard(r.Context(), caller, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *dashboardHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.dashboardService.MyDashboard(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
