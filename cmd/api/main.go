package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/momentum-hr/performance-backend-go/internal/app"
	"github.com/momentum-hr/performance-backend-go/internal/config"
	appHTTP "github.com/momentum-hr/performance-backend-go/internal/handler/http"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/database"
)

var version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).With(
		slog.String("app", "performance-backend"),
		slog.String("env", cfg.App.Env),
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	services, err := app.NewServices(cfg, db)
	if err != nil {
		return err
	}

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			AllowedOrigins: cfg.App.CORSOrigins,
			Env:            cfg.App.Env,
			Version:        version,
			LogLevel:       level,
			LogOutput:      os.Stdout,
		},
		services.JWT,
		appHTTP.Handlers{
			Auth:       appHTTP.NewAuthHandler(services.Auth),
			Employee:   appHTTP.NewEmployeeHandler(services.Employee, services.Metrics),
			Team:       appHTTP.NewTeamHandler(services.Team),
			Task:       appHTTP.NewTaskHandler(services.Task),
			Attendance: appHTTP.NewAttendanceHandler(services.Attendance),
			KPI:        appHTTP.NewKPIHandler(services.KPI),
			Evaluation: appHTTP.NewEvaluationHandler(services.Evaluation),
			Dashboard:  appHTTP.NewDashboardHandler(services.Dashboard),
			Attachment: appHTTP.NewAttachmentHandler(services.Attachment),
		},
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
