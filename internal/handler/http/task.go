package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/momentum-hr/performance-backend-go/internal/domain/task"
	"github.com/momentum-hr/performance-backend-go/internal/handler/http/response"
)

type TaskHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListTeam(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	AttachFile(w http.ResponseWriter, r *http.Request)
}

type taskHandlerImpl struct {
	taskService task.TaskService
}

func NewTaskHandler(taskService task.TaskService) TaskHandler {
	return &taskHandlerImpl{taskService: taskService}
}

func taskFilterFromQuery(r *http.Request) task.TaskFilter {
	q := r.URL.Query()
	return task.TaskFilter{
		EmployeeID:   q.Get("employee_id"),
		Status:       q.Get("status"),
		ReviewStatus: q.Get("review_status"),
	}
}

// Create handles POST /tasks
func (h *taskHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	var req task.CreateTaskRequest
	if !decodeJSON(w, r, &req, "CreateTask") {
		return
	}

	result, err := h.taskService.Create(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Task created successfully", result)
}

// Get handles GET /tasks/{id}
func (h *taskHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.taskService.Get(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListMine handles GET /tasks/mine
func (h *taskHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.taskService.ListMine(r.Context(), caller, taskFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: len(result)})
}

// ListTeam handles GET /team/tasks
func (h *taskHandlerImpl) ListTeam(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.taskService.ListTeam(r.Context(), caller, taskFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: len(result)})
}

// UpdateStatus handles PATCH /tasks/{id}/status
func (h *taskHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	var req task.UpdateStatusRequest
	if !decodeJSON(w, r, &req, "UpdateTaskStatus") {
		return
	}

	result, err := h.taskService.UpdateStatus(r.Context(), caller, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task status updated", result)
}

// Review handles POST /tasks/{id}/review
func (h *taskHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	var req task.ReviewTaskRequest
	if !decodeJSON(w, r, &req, "ReviewTask") {
		return
	}

	result, err := h.taskService.Review(r.Context(), caller, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task reviewed", result)
}

// AttachFile handles PUT /tasks/{id}/attachment
func (h *taskHandlerImpl) AttachFile(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	var req task.AttachFileRequest
	if !decodeJSON(w, r, &req, "AttachFile") {
		return
	}

	result, err := h.taskService.AttachFile(r.Context(), caller, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attachment saved", result)
}
