package main

import (
	"context"
	"database/sql"
	"os"

	"qa-report/internal/shared/config"
	"qa-report/internal/shared/server"
	"qa-report/internal/shared/storage/db"
	"qa-report/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.SetLevel(cfg.LogLevel)
	ctx := context.Background()

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			telemetry.Error("db.connect_failed", map[string]any{"error": err})
			os.Exit(1)
		}
		defer conn.Close()
		if cfg.AutoMigrate {
			if err := db.RunMigrations(ctx, conn); err != nil {
				telemetry.Error("db.migrate_failed", map[string]any{"error": err})
				os.Exit(1)
			}
		}
		sqlDB = conn
	} else {
		telemetry.Warn("db.not_configured", map[string]any{"env": cfg.Env})
	}

	r := server.NewRouter(cfg, sqlDB)
	addr := server.Addr(cfg.Port)
	telemetry.Info("server.start", map[string]any{"addr": addr, "env": cfg.Env})

	if err := r.Run(addr); err != nil {
		telemetry.Error("server.stopped", map[string]any{"error": err})
		os.Exit(1)
	}
}
