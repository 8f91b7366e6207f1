package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/momentum-hr/performance-backend-go/internal/domain/auth"
	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/handler/http/response"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/jwt"
)

type actorKey struct{}

// AuthRequired rejects requests without a verified access token and stores the
// caller's actor in the request context. jwtauth.Verifier must run first.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		m, err := token.AsMap(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}
		claims, err := jwt.ClaimsFromMap(m)
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), claims.Actor())))
	})
}

func WithActor(ctx context.Context, actor user.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor stored by AuthRequired.
func ActorFromContext(ctx context.Context) (user.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(user.Actor)
	return actor, ok
}
