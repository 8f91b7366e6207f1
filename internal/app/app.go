package app

import (
	"fmt"

	"github.com/momentum-hr/performance-backend-go/internal/config"
	"github.com/momentum-hr/performance-backend-go/internal/domain/attendance"
	"github.com/momentum-hr/performance-backend-go/internal/domain/auth"
	"github.com/momentum-hr/performance-backend-go/internal/domain/dashboard"
	"github.com/momentum-hr/performance-backend-go/internal/domain/employee"
	"github.com/momentum-hr/performance-backend-go/internal/domain/evaluation"
	"github.com/momentum-hr/performance-backend-go/internal/domain/kpi"
	"github.com/momentum-hr/performance-backend-go/internal/domain/metrics"
	"github.com/momentum-hr/performance-backend-go/internal/domain/task"
	"github.com/momentum-hr/performance-backend-go/internal/domain/team"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/database"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/jwt"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/storage"
	"github.com/momentum-hr/performance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/momentum-hr/performance-backend-go/internal/service/attendance"
	authService "github.com/momentum-hr/performance-backend-go/internal/service/auth"
	"github.com/momentum-hr/performance-backend-go/internal/service/authz"
	dashboardService "github.com/momentum-hr/performance-backend-go/internal/service/dashboard"
	employeeService "github.com/momentum-hr/performance-backend-go/internal/service/employee"
	"github.com/momentum-hr/performance-backend-go/internal/service/file"
	evaluationService "github.com/momentum-hr/performance-backend-go/internal/service/evaluation"
	kpiService "github.com/momentum-hr/performance-backend-go/internal/service/kpi"
	metricsService "github.com/momentum-hr/performance-backend-go/internal/service/metrics"
	taskService "github.com/momentum-hr/performance-backend-go/internal/service/task"
	teamService "github.com/momentum-hr/performance-backend-go/internal/service/team"
)

// Services is the fully wired service layer shared by the API server and perfctl.
type Services struct {
	JWT        jwt.Service
	Auth       auth.AuthService
	Employee   employee.EmployeeService
	Team       team.TeamService
	Task       task.TaskService
	Attendance attendance.AttendanceService
	KPI        kpi.KPIService
	Metrics    metrics.MetricsService
	Evaluation evaluation.EvaluationService
	Dashboard  dashboard.DashboardService
	Attachment file.AttachmentService
}

func NewServices(cfg *config.Config, db *database.DB) (*Services, error) {
	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	teamRepo := postgresql.NewTeamRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	kpiRepo := postgresql.NewKPIRepository(db)
	evaluationRepo := postgresql.NewEvaluationRepository(db)
	tx := postgresql.NewTransactor(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authorizer := authz.NewAuthorizer(teamRepo)
	taskSvc := taskService.NewTaskService(tx, taskRepo, teamRepo, authorizer)
	metricsSvc := metricsService.NewMetricsService(employeeRepo, attendanceRepo, taskRepo, evaluationRepo, authorizer)

	return &Services{
		JWT:        JWTService,
		Auth:       authService.NewAuthService(userRepo, JWTService),
		Employee:   employeeService.NewEmployeeService(tx, employeeRepo, userRepo, authorizer),
		Team:       teamService.NewTeamService(tx, teamRepo, employeeRepo, userRepo),
		Task:       taskSvc,
		Attendance: attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, authorizer),
		KPI:        kpiService.NewKPIService(kpiRepo),
		Metrics:    metricsSvc,
		Evaluation: evaluationService.NewEvaluationService(evaluationService.Deps{
			Tx:          tx,
			Evaluations: evaluationRepo,
			Employees:   employeeRepo,
			KPIs:        kpiRepo,
			Attendance:  attendanceRepo,
			Tasks:       taskRepo,
			Metrics:     metricsSvc,
			Authorizer:  authorizer,
		}),
		Dashboard: dashboardService.NewDashboardService(teamRepo, employeeRepo, metricsSvc, dashboardService.Options{
			Concurrency:     cfg.Metrics.Concurrency,
			EmployeeTimeout: cfg.Metrics.EmployeeTimeout,
		}),
		Attachment: file.NewAttachmentService(taskSvc, fileStorage),
	}, nil
}
