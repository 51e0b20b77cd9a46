package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string
	Timezone  string

	// Database
	DatabaseURL    string
	DatabaseDriver string
	SQLitePath     string
	LocalMode      bool

	// Redis
	RedisURL       string
	RefreshLockTTL time.Duration

	// RabbitMQ
	RabbitMQURL string

	// Worker
	WorkerHealthAddr    string
	WorkerTickInterval  time.Duration
	PublishBreakerTrips uint32

	// MCP
	MCPAddr      string
	MCPAuthToken string

	// Preferences file (TOML)
	PreferencesPath string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	databaseURL := getEnv("DATABASE_URL", "")
	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		Timezone:  getEnv("DAYQUEST_TIMEZONE", "Local"),

		DatabaseURL:    databaseURL,
		DatabaseDriver: getEnv("DATABASE_DRIVER", ""),
		SQLitePath:     getEnv("SQLITE_PATH", defaultDataPath("data.db")),
		LocalMode:      databaseURL == "",

		RedisURL:       getEnv("REDIS_URL", ""),
		RefreshLockTTL: getDurationEnv("REFRESH_LOCK_TTL", 10*time.Second),

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		WorkerHealthAddr:    getEnv("WORKER_HEALTH_ADDR", "0.0.0.0:8081"),
		WorkerTickInterval:  getDurationEnv("WORKER_TICK_INTERVAL", 30*time.Second),
		PublishBreakerTrips: uint32(getIntEnv("PUBLISH_BREAKER_TRIPS", 5)),

		MCPAddr:      getEnv("MCP_ADDR", "0.0.0.0:8082"),
		MCPAuthToken: getEnv("MCP_AUTH_TOKEN", ""),

		PreferencesPath: getEnv("PREFERENCES_PATH", defaultDataPath("preferences.toml")),
	}

	if cfg.DatabaseDriver == "" {
		if cfg.LocalMode {
			cfg.DatabaseDriver = "sqlite"
		} else {
			cfg.DatabaseDriver = "auto"
		}
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Location resolves the configured time zone used to cut calendar days.
// Unknown zones fall back to the process-local zone.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".dayquest", name)
	}
	return filepath.Join(home, ".dayquest", name)
}
