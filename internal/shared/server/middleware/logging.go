package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"qa-report/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"bytes":       c.Writer.Size(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		for _, key := range []string{"analysisId", "agentId", "format"} {
			if v, ok := c.Get(key); ok {
				fields[snakeKey(key)] = v
			}
		}
		telemetry.Info("request.complete", fields)
	}
}

func snakeKey(key string) string {
	switch key {
	case "analysisId":
		return "analysis_id"
	case "agentId":
		return "agent_id"
	default:
		return key
	}
}
