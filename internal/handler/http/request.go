package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/momentum-hr/performance-backend-go/internal/domain/auth"
	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/handler/http/middleware"
	"github.com/momentum-hr/performance-backend-go/internal/handler/http/response"
)

// decodeJSON reads the body into dst, answering 400 on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// actor returns the authenticated caller, answering 401 when none is present.
func actor(w http.ResponseWriter, r *http.Request) (user.Actor, bool) {
	a, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
	}
	return a, ok
}
