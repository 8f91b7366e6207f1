package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/momentum-hr/performance-backend-go/internal/domain/evaluation"
	"github.com/momentum-hr/performance-backend-go/internal/handler/http/response"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/validator"
)

type EvaluationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	CloseOut(w http.ResponseWriter, r *http.Request)
}

type evaluationHandlerImpl struct {
	evaluationService evaluation.EvaluationService
}

func NewEvaluationHandler(evaluationService evaluation.EvaluationService) EvaluationHandler {
	return &evaluationHandlerImpl{evaluationService: evaluationService}
}

// Create handles POST /evaluations
func (h *evaluationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	var req evaluation.CreateEvaluationRequest
	if !decodeJSON(w, r, &req, "CreateEvaluation") {
		return
	}

	result, err := h.evaluationService.Create(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Evaluation created successfully", result)
}

// List handles GET /evaluations?employee_id=
func (h *evaluationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		employeeID = caller.EmployeeID
	}
	if !validator.IsValidUUID(employeeID) {
		response.HandleError(w, validator.ValidationErrors{{Field: "employee_id", Message: "employee_id must be a valid UUID"}})
		return
	}

	result, err := h.evaluationService.ListByEmployee(r.Context(), caller, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: len(result)})
}

// Get handles GET /evaluations/{id}
func (h *evaluationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.evaluationService.Get(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CloseOut handles POST /evaluations/{id}/close-out
func (h *evaluationHandlerImpl) CloseOut(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.evaluationService.CloseOut(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Evaluation closed out", result)
}
