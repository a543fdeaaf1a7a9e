package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the score sync and pick grading service

var (
	// Scoreboard API metrics
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportspredictions_api_calls_total",
			Help: "Total number of NCAA scoreboard API calls",
		},
		[]string{"endpoint", "status"},
	)

	APICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sportspredictions_api_call_duration_seconds",
			Help:    "Duration of scoreboard API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// Database metrics
	DBQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportspredictions_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "table", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sportspredictions_db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sportspredictions_db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sportspredictions_db_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	// Cache metrics
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sportspredictions_cache_hits_total",
			Help: "Total number of cache hits",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sportspredictions_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	CacheOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sportspredictions_cache_operation_duration_seconds",
			Help:    "Duration of cache operations in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	// Sync metrics
	SyncOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportspredictions_sync_operations_total",
			Help: "Total number of per-unit sync operations by outcome",
		},
		[]string{"sport", "outcome"},
	)

	SyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sportspredictions_sync_duration_seconds",
			Help:    "Duration of per-unit sync operations in seconds",
			Buckets: []float64{.1, .5, 1, 5, 10, 30, 60, 120},
		},
		[]string{"sport"},
	)

	GamesSyncedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportspredictions_games_synced_total",
			Help: "Total number of scoreboard records upserted",
		},
		[]string{"sport"},
	)

	GamesSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportspredictions_games_skipped_total",
			Help: "Total number of scoreboard records skipped for lack of a matching team",
		},
		[]string{"sport"},
	)

	// Grading metrics
	PicksGradedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sportspredictions_picks_graded_total",
			Help: "Total number of picks graded",
		},
	)

	GradingTiesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sportspredictions_grading_ties_total",
			Help: "Total number of tied final games seen by the grader",
		},
	)

	GradingRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportspredictions_grading_runs_total",
			Help: "Total number of grading passes",
		},
		[]string{"status"},
	)

	// Pick mutation metrics
	PickMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportspredictions_pick_mutations_total",
			Help: "Total number of pick submissions and deletions by result",
		},
		[]string{"action", "result"},
	)

	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportspredictions_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sportspredictions_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportspredictions_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)

	// Scheduler metrics
	ScheduledRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sportspredictions_scheduled_runs_total",
			Help: "Total number of scheduled sync-and-grade runs",
		},
	)

	ScheduledRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sportspredictions_scheduled_run_duration_seconds",
			Help:    "Duration of scheduled sync-and-grade runs in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120},
		},
	)

	// System metrics
	SystemUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sportspredictions_system_uptime_seconds",
			Help: "System uptime in seconds",
		},
	)

	LastSuccessfulSync = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sportspredictions_last_successful_sync_timestamp",
			Help: "Timestamp of last sync unit that reached the scoreboard",
		},
	)
)

// RecordAPICall records an API call metric
func RecordAPICall(endpoint, status string, duration float64) {
	APICallsTotal.WithLabelValues(endpoint, status).Inc()
	APICallDuration.WithLabelValues(endpoint).Observe(duration)
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table, status string, duration float64) {
	DBQueriesTotal.WithLabelValues(operation, table, status).Inc()
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration)
}

// RecordCacheHit records a cache hit
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss() {
	CacheMissesTotal.Inc()
}

// RecordCacheOperation records a cache operation duration
func RecordCacheOperation(operation string, duration float64) {
	CacheOperationDuration.WithLabelValues(operation).Observe(duration)
}

// RecordSync records one sync unit
func RecordSync(sport, outcome string, synced, skipped int, duration float64) {
	SyncOperationsTotal.WithLabelValues(sport, outcome).Inc()
	SyncDuration.WithLabelValues(sport).Observe(duration)
	GamesSyncedTotal.WithLabelValues(sport).Add(float64(synced))
	GamesSkippedTotal.WithLabelValues(sport).Add(float64(skipped))

	if outcome != "upstream_failure" {
		LastSuccessfulSync.SetToCurrentTime()
	}
}

// RecordGrading records a grading pass
func RecordGrading(status string, picksUpdated, ties int) {
	GradingRunsTotal.WithLabelValues(status).Inc()
	PicksGradedTotal.Add(float64(picksUpdated))
	GradingTiesTotal.Add(float64(ties))
}

// RecordPickMutation records a pick submission or deletion
func RecordPickMutation(action, result string) {
	PickMutationsTotal.WithLabelValues(action, result).Inc()
}

// RecordHTTPRequest records an HTTP request
func RecordHTTPRequest(method, route, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration)
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}

// UpdateDBConnectionStats updates database connection pool statistics
func UpdateDBConnectionStats(active, idle int32) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}

// RecordScheduledRun records a scheduled sync-and-grade run
func RecordScheduledRun(duration float64) {
	ScheduledRunsTotal.Inc()
	ScheduledRunDuration.Observe(duration)
}
