package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/aussiebroadwan/entrabackup/pkg/graph"
)

type Config struct {
	TenantID     string // Required: Entra tenant id
	ClientID     string // Required: application (client) id
	ClientSecret string // Required unless loaded from Keeper
	Authority    string // Optional: token authority (default: https://login.microsoftonline.com)
	GraphBaseURL string // Optional: Graph API base URL (default: https://graph.microsoft.com/v1.0)

	AuthUsername string // Required: Basic auth username for operator endpoints
	AuthPassword string // Required: Basic auth password for operator endpoints

	WebhookURL string // Optional: public notification URL; subscriptions need it

	DatabaseDriver string // Optional: sqlite or postgres (default: sqlite)
	DatabaseURL    string // Optional: SQLite file or Postgres DSN (default: entrabackup.db)

	KSMConfig    string // Optional: base64 Keeper Secrets Manager config
	KSMRecordUID string // Optional: Keeper record holding the client secret

	UpstreamTimeout      time.Duration // Outbound HTTP timeout (default: 30s)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired subscription pruning interval (default: 1h)
}

// LoadDotEnv reads KEY=VALUE pairs from path into the environment. Variables
// that are already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func LoadConfig() Config {
	return Config{
		TenantID:     os.Getenv("ENTRA_TENANT_ID"),
		ClientID:     os.Getenv("ENTRA_CLIENT_ID"),
		ClientSecret: os.Getenv("ENTRA_CLIENT_SECRET"),
		Authority:    getEnvOrDefault("ENTRA_AUTHORITY", graph.DefaultAuthority),
		GraphBaseURL: getEnvOrDefault("GRAPH_BASE_URL", graph.DefaultBaseURL),

		AuthUsername: os.Getenv("AUTH_USERNAME"),
		AuthPassword: os.Getenv("AUTH_PASSWORD"),

		WebhookURL: os.Getenv("WEBHOOK_URL"),

		DatabaseDriver: strings.ToLower(getEnvOrDefault("DATABASE_DRIVER", "sqlite")),
		DatabaseURL:    getEnvOrDefault("DATABASE_URL", "entrabackup.db"),

		KSMConfig:    os.Getenv("KSM_CONFIG_BASE64"),
		KSMRecordUID: os.Getenv("KSM_RECORD_UID"),

		UpstreamTimeout:      getEnvDurationOrDefault("UPSTREAM_TIMEOUT", 30*time.Second),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

// Validate reports every missing or invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	required := []struct{ name, value string }{
		{"ENTRA_TENANT_ID", c.TenantID},
		{"ENTRA_CLIENT_ID", c.ClientID},
		{"ENTRA_CLIENT_SECRET", c.ClientSecret},
		{"AUTH_USERNAME", c.AuthUsername},
		{"AUTH_PASSWORD", c.AuthPassword},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("%s is required", r.name))
		}
	}

	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER %q is not supported (sqlite, postgres)", c.DatabaseDriver))
	}

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d is out of range", c.Port))
	}

	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
