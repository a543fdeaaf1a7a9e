package api

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"time"

	"github.com/Williamsdg/sportspredictions/internal/auth"
	"github.com/Williamsdg/sportspredictions/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// requestLogger logs each request through zerolog and records its metrics
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			duration := time.Since(start)
			route := r.URL.Path
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(ww.Status()), duration.Seconds())

			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", duration).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("HTTP request")
		}()

		next.ServeHTTP(ww, r)
	})
}

// requireCronSecret guards trigger endpoints with "Authorization: Bearer CRON_SECRET".
// With no secret configured the endpoints are open.
func (h *handlers) requireCronSecret(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.CronSecret != "" {
			token, ok := auth.BearerToken(r)
			if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(h.CronSecret)) != 1 {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
