package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/momentum-hr/performance-backend-go/internal/domain/employee"
	"github.com/momentum-hr/performance-backend-go/internal/domain/metrics"
	"github.com/momentum-hr/performance-backend-go/internal/handler/http/response"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/validator"
)

type EmployeeHandler interface {
	// Create handles POST /employees
	Create(w http.ResponseWriter, r *http.Request)
	// Get handles GET /employees/{id}
	Get(w http.ResponseWriter, r *http.Request)
	// Metrics handles GET /employees/{id}/metrics
	Metrics(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
	metricsService  metrics.MetricsService
}

func NewEmployeeHandler(employeeService employee.EmployeeService, metricsService metrics.MetricsService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
		metricsService:  metricsService,
	}
}

func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	var req employee.CreateEmployeeRequest
	if !decodeJSON(w, r, &req, "CreateEmployee") {
		return
	}

	result, err := h.employeeService.CreateWithAccount(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", result)
}

func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.employeeService.GetEmployee(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Metrics accepts period_days and since_last_evaluation query parameters.
func (h *employeeHandlerImpl) Metrics(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	var query metrics.MetricsQuery
	if p := r.URL.Query().Get("period_days"); p != "" {
		days, err := strconv.Atoi(p)
		if err != nil {
			response.HandleError(w, validator.ValidationErrors{{Field: "period_days", Message: "period_days must be a number"}})
			return
		}
		query.PeriodDays = days
	}
	if s := r.URL.Query().Get("since_last_evaluation"); s != "" {
		since, err := strconv.ParseBool(s)
		if err != nil {
			response.HandleError(w, validator.ValidationErrors{{Field: "since_last_evaluation", Message: "since_last_evaluation must be true or false"}})
			return
		}
		query.SinceLastEvaluation = since
	}

	result, err := h.metricsService.ViewEmployeeMetrics(r.Context(), caller, chi.URLParam(r, "id"), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
