package server

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"qa-report/internal/reports"
	"qa-report/internal/shared/config"
	"qa-report/internal/shared/metrics"
	"qa-report/internal/shared/server/middleware"
	"qa-report/internal/shared/server/respond"
	"qa-report/report/render"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
// sqlDB may be nil, in which case only health and metrics are served.
func NewRouter(cfg config.Config, sqlDB *sql.DB) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigins),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true, "database": sqlDB != nil})
	})

	if sqlDB != nil {
		format, err := render.ParseFormat(cfg.DefaultFormat)
		if err != nil {
			format = render.FormatDOCX
		}
		var opts []reports.Option
		if cfg.BatchedActions {
			opts = append(opts, reports.WithBatchedActions())
		}
		svc := reports.NewService(sqlDB, cfg.OutputDir, format, opts...)
		limiter := middleware.NewRateLimiter(nil)
		rule := middleware.RateLimitRule{Rate: cfg.RenderRate, Burst: cfg.RenderBurst}
		reports.NewHandler(svc).RegisterRoutes(api, middleware.RateLimit(limiter, "render", rule))
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
