package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Williamsdg/sportspredictions/internal/api"
	"github.com/Williamsdg/sportspredictions/internal/app"
	"github.com/Williamsdg/sportspredictions/internal/config"
	"github.com/Williamsdg/sportspredictions/internal/metrics"
	"github.com/Williamsdg/sportspredictions/internal/repository"
	"github.com/Williamsdg/sportspredictions/internal/scheduler"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// scheduledRunTimeout bounds one sync-then-grade pass
const scheduledRunTimeout = 10 * time.Minute

func main() {
	cfg := config.MustLoad()
	app.SetupLogger(cfg)

	log.Info().
		Str("env", cfg.AppEnv).
		Str("log_level", cfg.LogLevel).
		Str("sync_timezone", cfg.SyncTimezone).
		Msg("Starting score sync worker")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer a.Close()

	server := api.NewServer(fmt.Sprintf(":%d", cfg.HTTPPort), api.NewRouter(api.Deps{
		Sync:           a.Sync,
		Grader:         a.Grader,
		Picks:          a.Picks,
		Games:          a.DB.Games,
		Auth:           a.Auth,
		CronSecret:     cfg.CronSecret,
		AllowedOrigins: cfg.AllowedOrigins(),
		Health:         a.Health,
	}))

	sched := scheduler.NewScheduler(a.Sync, cfg.SyncCron, cfg.Location(), scheduledRunTimeout)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return server.Run(ctx) })
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("Received shutdown signal, gracefully shutting down...")
		return server.Shutdown(context.Background())
	})

	if cfg.EnableMetrics {
		metricsServer := newMetricsServer(cfg.MetricsPort, a.DB)
		g.Go(func() error { return metricsServer.Run(ctx) })
		g.Go(func() error {
			<-ctx.Done()
			return metricsServer.Shutdown(context.Background())
		})
	}

	// Update uptime and pool gauges
	g.Go(func() error {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.SystemUptime.Set(a.Uptime().Seconds())
				a.DB.ReportPoolStats()
			case <-ctx.Done():
				return nil
			}
		}
	})

	if cfg.EnableScheduler {
		if err := sched.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start scheduler")
		}
		defer sched.Stop()
	}

	if cfg.InitialSyncEnabled {
		g.Go(func() error {
			log.Info().Msg("Running initial sync...")
			sched.RunNow(ctx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Worker stopped with error")
	}
	log.Info().Msg("Worker shutdown complete")
}

// newMetricsServer serves Prometheus metrics and a health endpoint with pool stats
func newMetricsServer(port int, db *repository.Database) *api.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{"status": "healthy", "pool": db.PoolStats()}
		status := http.StatusOK
		if err := db.Health(r.Context()); err != nil {
			body["status"] = "unhealthy"
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	})

	log.Info().Int("port", port).Msg("Starting metrics server")
	return api.NewServer(fmt.Sprintf(":%d", port), mux)
}
