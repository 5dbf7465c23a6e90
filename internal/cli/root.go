// Package cli contains the qareport operator commands.
package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"qa-report/internal/reports"
	"qa-report/internal/shared/config"
	"qa-report/internal/shared/storage/db"
	"qa-report/internal/shared/telemetry"
	"qa-report/report/render"
)

var (
	// Global flags
	verbose    bool
	configPath string

	cfg config.Config
)

// connectDB opens the shared handle for one command invocation.
var connectDB = func(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	return db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultCLIOptions()))
}

var rootCmd = &cobra.Command{
	Use:   "qareport",
	Short: "Generate QA coaching reports from stored call analyses",
	Long: `qareport reads combined call-quality analyses from the database and
turns them into coaching documents.

Examples:
  qareport agents                     # List agents
  qareport analyses 3                 # List analyses for agent 3, newest first
  qareport download 42                # Write QA_Report_<agent>_<date>.docx
  qareport download 42 --out r.pdf    # Write a PDF instead
  qareport show 42 --output yaml      # Dump the assembled report`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: config.toml)")
}

// reportedError has already been shown to the operator.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	var reported reportedError
	if !errors.As(err, &reported) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return 1
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if configPath != "" {
		if err := os.Setenv("QAREPORT_CONFIG", configPath); err != nil {
			return err
		}
	}
	telemetry.SetOutput(cmd.ErrOrStderr())
	cfg = config.Load()
	if verbose {
		telemetry.SetLevel("debug")
	} else {
		telemetry.SetLevel(cfg.LogLevel)
	}
	return nil
}

func withDB(cmd *cobra.Command, fn func(ctx context.Context, sqlDB *sql.DB) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	sqlDB, err := connectDB(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer sqlDB.Close()
	return fn(ctx, sqlDB)
}

func withService(cmd *cobra.Command, fn func(ctx context.Context, svc *reports.Service) error) error {
	return withDB(cmd, func(ctx context.Context, sqlDB *sql.DB) error {
		format, err := render.ParseFormat(cfg.DefaultFormat)
		if err != nil {
			return err
		}
		var opts []reports.Option
		if cfg.BatchedActions {
			opts = append(opts, reports.WithBatchedActions())
		}
		return fn(ctx, reports.NewService(sqlDB, cfg.OutputDir, format, opts...))
	})
}

func parseID(raw, label string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", label, raw)
	}
	return id, nil
}
