// Package app wires configuration into the running collaborators shared by
// the worker and the command-line tools.
package app

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Williamsdg/sportspredictions/internal/auth"
	"github.com/Williamsdg/sportspredictions/internal/cache"
	"github.com/Williamsdg/sportspredictions/internal/client"
	"github.com/Williamsdg/sportspredictions/internal/config"
	"github.com/Williamsdg/sportspredictions/internal/grading"
	"github.com/Williamsdg/sportspredictions/internal/picks"
	"github.com/Williamsdg/sportspredictions/internal/repository"
	"github.com/Williamsdg/sportspredictions/internal/resolver"
	"github.com/Williamsdg/sportspredictions/internal/scoresync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// App holds the collaborators built from one configuration
type App struct {
	Config  *config.Config
	DB      *repository.Database
	Cache   *cache.RedisCache
	Client  *client.Client
	Grader  *grading.Grader
	Sync    *scoresync.Service
	Picks   *picks.Service
	Auth    *auth.Authenticator
	started time.Time
}

// SetupLogger configures the global zerolog logger
func SetupLogger(cfg *config.Config) {
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().Str("level", level.String()).Msg("Logger initialized")
}

// DatabaseConfig maps the application config onto the repository config
func DatabaseConfig(cfg *config.Config) repository.Config {
	return repository.Config{
		Host:     cfg.DatabaseHost,
		Port:     strconv.Itoa(cfg.DatabasePort),
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Database: cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	}
}

// New connects to the database, optionally to Redis, and builds the services.
// Redis is optional; without it the scoreboard client fetches every time.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := repository.NewDatabase(ctx, DatabaseConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info().Msg("Database connection established")

	if cfg.RunMigrations {
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}

	a := &App{
		Config:  cfg,
		DB:      db,
		Client:  client.NewClient(cfg.NCAABaseURL, cfg.NCAATimeout, cfg.NCAAMaxRetries, cfg.NCAAMaxConcurrent),
		Auth:    auth.New(cfg.JWTSecret),
		started: time.Now(),
	}

	if cfg.EnableCache {
		rc, err := cache.NewRedisCache(cache.Config{
			Host:      cfg.RedisHost,
			Port:      strconv.Itoa(cfg.RedisPort),
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: "sportspredictions:",
		})
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr()).Msg("Failed to connect to Redis - continuing without cache")
		} else {
			a.Cache = rc
			a.Client.WithCache(rc, cfg.CacheTTLScoreboard, cfg.CacheTTLSchedule)
		}
	}

	engine := scoresync.NewEngine(a.Client, db.Teams, db.Games, resolver.NewDefault())
	a.Grader = grading.NewGrader(db.Games, db.Picks)
	a.Sync = scoresync.NewService(engine, db.Sports, db.Seasons, a.Grader, cfg.Location())
	a.Picks = picks.NewService(db.Games, db.Picks, a.Sync)

	return a, nil
}

// Uptime is the time since New returned
func (a *App) Uptime() time.Duration {
	return time.Since(a.started)
}

// Health checks the database and, when configured, the cache
func (a *App) Health(ctx context.Context) error {
	if err := a.DB.Health(ctx); err != nil {
		return err
	}
	if a.Cache != nil {
		if err := a.Cache.HealthCheck(ctx); err != nil {
			return fmt.Errorf("cache health check failed: %w", err)
		}
	}
	return nil
}

// Close releases the database pool and the cache connection
func (a *App) Close() {
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis connection")
		}
	}
	a.DB.Close()
}
