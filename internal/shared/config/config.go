package config

import (
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"qa-report/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Env              string
	Port             string
	CORSAllowOrigins []string
	DatabaseURL      string
	AutoMigrate      bool
	LogLevel         string
	OutputDir        string
	DefaultFormat    string
	BatchedActions   bool
	// RenderRate and RenderBurst bound document downloads per client; zero disables.
	RenderRate  float64
	RenderBurst int
}

// Load reads configuration from environment variables, falling back to the
// optional TOML file and then to defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	path := getEnv("QAREPORT_CONFIG", "config.toml")
	file, err := LoadFile(path)
	if err != nil {
		telemetry.Error("config.file_invalid", map[string]any{"path": path, "error": err})
	}
	return fromEnv(file)
}

func fromEnv(file File) Config {
	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := getEnv("DATABASE_URL", file.Database.DSN())
	if env == "production" && dbURL == "" {
		telemetry.Error("config.database_missing", map[string]any{"env": env})
	}

	return Config{
		Env:              env,
		Port:             getEnv("PORT", orDefault(file.Server.Port, "8080")),
		CORSAllowOrigins: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:      dbURL,
		AutoMigrate:      getBool("DB_AUTO_MIGRATE", false),
		LogLevel:         getEnv("LOG_LEVEL", orDefault(file.Log.Level, "info")),
		OutputDir:        getEnv("REPORT_OUTPUT_DIR", orDefault(file.Report.OutputDir, ".")),
		DefaultFormat:    strings.ToLower(getEnv("REPORT_FORMAT", orDefault(file.Report.DefaultFormat, "docx"))),
		BatchedActions:   getBool("REPORT_BATCHED_ACTIONS", file.Report.BatchedActions),
		RenderRate:       getFloat("REPORT_RATE_LIMIT_RPS", 2),
		RenderBurst:      getInt("REPORT_RATE_LIMIT_BURST", 5),
	}
}

// DSN builds a Postgres connection URL from the [database] section.
// It returns "" when no server is configured.
func (d DatabaseSection) DSN() string {
	if strings.TrimSpace(d.Server) == "" {
		return ""
	}
	host := d.Server
	if d.Port != 0 {
		host = net.JoinHostPort(d.Server, strconv.Itoa(d.Port))
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   host,
		Path:   "/" + d.Database,
	}
	if d.User != "" {
		u.User = url.UserPassword(d.User, d.Password)
	}
	q := url.Values{}
	q.Set("sslmode", orDefault(d.SSLMode, "disable"))
	u.RawQuery = q.Encode()
	return u.String()
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getBool(key string, def bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return val
}

func getFloat(key string, def float64) float64 {
	val, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil {
		return def
	}
	return val
}

func getInt(key string, def int) int {
	val, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func orDefault(val, def string) string {
	if strings.TrimSpace(val) == "" {
		return def
	}
	return val
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
