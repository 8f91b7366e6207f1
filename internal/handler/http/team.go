package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/momentum-hr/performance-backend-go/internal/domain/team"
	"github.com/momentum-hr/performance-backend-go/internal/handler/http/response"
)

type TeamHandler interface {
	ListMembers(w http.ResponseWriter, r *http.Request)
	SearchAvailable(w http.ResponseWriter, r *http.Request)
	AddMember(w http.ResponseWriter, r *http.Request)
	RemoveMember(w http.ResponseWriter, r *http.Request)
}

type teamHandlerImpl struct {
	teamService team.TeamService
}

func NewTeamHandler(teamService team.TeamService) TeamHandler {
	return &teamHandlerImpl{teamService: teamService}
}

// ListMembers handles GET /team
func (h *teamHandlerImpl) ListMembers(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	members, err := h.teamService.ListMembers(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, members, &response.Meta{TotalItems: len(members)})
}

// SearchAvailable handles GET /team/available?q=
func (h *teamHandlerImpl) SearchAvailable(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.teamService.SearchAvailable(r.Context(), caller, r.URL.Query().Get("q"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AddMember handles POST /team/members
func (h *teamHandlerImpl) AddMember(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	var req team.AddMemberRequest
	if !decodeJSON(w, r, &req, "AddMember") {
		return
	}

	member, err := h.teamService.AddMember(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee added to team", member)
}

// RemoveMember handles DELETE /team/members/{employeeID}
func (h *teamHandlerImpl) RemoveMember(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	if err := h.teamService.RemoveMember(r.Context(), caller, chi.URLParam(r, "employeeID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee removed from team", nil)
}
