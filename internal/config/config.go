package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// NCAA scoreboard API
	NCAABaseURL       string        `envconfig:"NCAA_BASE_URL" default:"https://ncaa-api.henrygd.me"`
	NCAATimeout       time.Duration `envconfig:"NCAA_TIMEOUT" default:"15s"`
	NCAAMaxRetries    int           `envconfig:"NCAA_MAX_RETRIES" default:"0"`
	NCAAMaxConcurrent int           `envconfig:"NCAA_MAX_CONCURRENT" default:"4"`

	// Database
	DatabaseHost     string `envconfig:"DATABASE_HOST" default:"localhost"`
	DatabasePort     int    `envconfig:"DATABASE_PORT" default:"5432"`
	DatabaseName     string `envconfig:"DATABASE_NAME" default:"sportspredictions"`
	DatabaseUser     string `envconfig:"DATABASE_USER" default:"sportspredictions"`
	DatabasePassword string `envconfig:"DATABASE_PASSWORD" required:"true"`
	DatabaseSSLMode  string `envconfig:"DATABASE_SSL_MODE" default:"disable"`
	RunMigrations    bool   `envconfig:"RUN_MIGRATIONS" default:"true"`

	// Redis
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Caching
	EnableCache        bool          `envconfig:"ENABLE_CACHE" default:"true"`
	CacheTTLScoreboard time.Duration `envconfig:"CACHE_TTL_SCOREBOARD" default:"60s"`
	CacheTTLSchedule   time.Duration `envconfig:"CACHE_TTL_SCHEDULE" default:"300s"`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// HTTP API
	HTTPPort           int    `envconfig:"HTTP_PORT" default:"8080"`
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`

	// Auth
	CronSecret string `envconfig:"CRON_SECRET" default:""`
	JWTSecret  string `envconfig:"JWT_SECRET" default:""`

	// Scheduler
	EnableScheduler    bool   `envconfig:"ENABLE_SCHEDULER" default:"true"`
	SyncCron           string `envconfig:"SYNC_CRON" default:"0 */4 * * *"`
	InitialSyncEnabled bool   `envconfig:"INITIAL_SYNC_ENABLED" default:"false"`
	SyncTimezone       string `envconfig:"SYNC_TIMEZONE" default:"America/New_York"`

	// Monitoring
	EnableMetrics bool `envconfig:"ENABLE_METRICS" default:"true"`
	MetricsPort   int  `envconfig:"METRICS_PORT" default:"9090"`
}

// Load loads configuration from environment variables
// It first attempts to load from .env file if in development mode
func Load() (*Config, error) {
	// Try to load .env file (ignore error if doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DatabasePassword == "" {
		return fmt.Errorf("DATABASE_PASSWORD is required")
	}

	if c.NCAABaseURL == "" {
		return fmt.Errorf("NCAA_BASE_URL is required")
	}

	if c.NCAAMaxRetries < 0 {
		return fmt.Errorf("NCAA_MAX_RETRIES must not be negative")
	}

	if c.NCAAMaxConcurrent < 1 {
		return fmt.Errorf("NCAA_MAX_CONCURRENT must be at least 1")
	}

	if _, err := time.LoadLocation(c.SyncTimezone); err != nil {
		return fmt.Errorf("SYNC_TIMEZONE %q is not a valid location: %w", c.SyncTimezone, err)
	}

	if c.IsProduction() {
		if c.CronSecret == "" {
			return fmt.Errorf("CRON_SECRET is required in production")
		}
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
	}

	return nil
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// Location returns the zone in which "today" and "yesterday" are computed.
// Validate has already checked the name, so failure falls back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.SyncTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// MustLoad loads configuration or panics on error
// Use this in main() where we want to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
