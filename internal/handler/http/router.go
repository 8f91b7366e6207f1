package http

import (
	"io"
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/handler/http/middleware"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/jwt"
)

type RouterOptions struct {
	AllowedOrigins []string
	Env            string
	Version        string
	LogLevel       slog.Level
	// LogOutput defaults to io.Discard when nil
	LogOutput io.Writer
}

type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Team       TeamHandler
	Task       TaskHandler
	Attendance AttendanceHandler
	KPI        KPIHandler
	Evaluation EvaluationHandler
	Dashboard  DashboardHandler
	Attachment AttachmentHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	out := opts.LogOutput
	if out == nil {
		out = io.Discard
	}
	logFormat := httplog.SchemaECS.Concise(!isProductionEnv(opts.Env))
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "performance-backend"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAccountManage)).Post("/", h.Employee.Create)
				r.Get("/{id}", h.Employee.Get)
				r.Get("/{id}/metrics", h.Employee.Metrics)
			})

			r.Route("/team", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionTeamManage))
				r.Get("/", h.Team.ListMembers)
				r.Get("/available", h.Team.SearchAvailable)
				r.Post("/members", h.Team.AddMember)
				r.Delete("/members/{employeeID}", h.Team.RemoveMember)
				r.Get("/tasks", h.Task.ListTeam)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Post("/", h.Task.Create)
				r.Get("/mine", h.Task.ListMine)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Task.Get)
					r.Patch("/status", h.Task.UpdateStatus)
					r.Post("/review", h.Task.Review)
					r.Put("/attachment", h.Task.AttachFile)
					r.Post("/attachment/upload", h.Attachment.Upload)
					r.Delete("/attachment", h.Attachment.Remove)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/", h.Attendance.Record)
				r.Get("/", h.Attendance.List)
			})

			r.Route("/kpis", func(r chi.Router) {
				r.Get("/", h.KPI.List)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionKPIManage))
					r.Post("/", h.KPI.Create)
					r.Put("/{id}", h.KPI.Update)
				})
			})

			r.Route("/evaluations", func(r chi.Router) {
				r.Post("/", h.Evaluation.Create)
				r.Get("/", h.Evaluation.List)
				r.Get("/{id}", h.Evaluation.Get)
				r.Post("/{id}/close-out", h.Evaluation.CloseOut)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/team", h.Dashboard.Team)
				r.Get("/me", h.Dashboard.Me)
			})
		})
	})

	return r
}

func isProductionEnv(env string) bool {
	return env == "production"
}
