package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"qa-report/internal/shared/storage/db"
	"qa-report/internal/shared/telemetry"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded database migrations",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

// runMigrations is swapped in tests.
var runMigrations = db.RunMigrations

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	return withDB(cmd, func(ctx context.Context, sqlDB *sql.DB) error {
		if err := runMigrations(ctx, sqlDB); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		telemetry.Info("db.migrated", nil)
		fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
		return nil
	})
}
