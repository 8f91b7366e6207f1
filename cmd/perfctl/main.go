// Command perfctl runs maintenance tasks against the performance database.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/momentum-hr/performance-backend-go/internal/app"
	"github.com/momentum-hr/performance-backend-go/internal/config"
	"github.com/momentum-hr/performance-backend-go/internal/domain/metrics"
	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/database"
	"github.com/momentum-hr/performance-backend-go/internal/repository/postgresql"
)

var (
	timeout             time.Duration
	periodDays          int
	sinceLastEvaluation bool
)

// systemActor performs maintenance with admin rights.
var systemActor = user.Actor{AccountID: "perfctl", Role: user.RoleAdmin}

var rootCmd = &cobra.Command{
	Use:           "perfctl",
	Short:         "Maintenance commands for the performance backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, _ *config.Config, db *database.DB) error {
			return postgresql.Migrate(ctx, db)
		})
	},
}

var closeOutCmd = &cobra.Command{
	Use:   "closeout <evaluation-id>",
	Short: "Fold an evaluation's window into history",
	Long: `Marks the attendance and tasks covered by the evaluation as counted and
evaluated. Running it again for the same evaluation changes nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, cfg *config.Config, db *database.DB) error {
			services, err := app.NewServices(cfg, db)
			if err != nil {
				return err
			}
			resp, err := services.Evaluation.CloseOut(ctx, systemActor, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		})
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics <employee-id>",
	Short: "Print the current metrics of one employee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, cfg *config.Config, db *database.DB) error {
			services, err := app.NewServices(cfg, db)
			if err != nil {
				return err
			}
			m, err := services.Metrics.EmployeeMetrics(ctx, args[0], time.Now(), metrics.ComplianceOptions{
				PeriodDays:          periodDays,
				SinceLastEvaluation: sinceLastEvaluation,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, m)
		})
	},
}

func withDB(parent context.Context, fn func(ctx context.Context, cfg *config.Config, db *database.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	return fn(ctx, cfg, db)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Operation timeout")
	metricsCmd.Flags().IntVar(&periodDays, "period-days", 0, "Only count tasks created within the last N days")
	metricsCmd.Flags().BoolVar(&sinceLastEvaluation, "since-last-evaluation", false, "Only count tasks created after the latest evaluation")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(closeOutCmd)
	rootCmd.AddCommand(metricsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("perfctl failed", "error", err)
		os.Exit(1)
	}
}
