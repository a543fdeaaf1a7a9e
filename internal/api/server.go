// Package api exposes sync, grading, games and picks over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Williamsdg/sportspredictions/internal/auth"
	"github.com/Williamsdg/sportspredictions/internal/grading"
	"github.com/Williamsdg/sportspredictions/internal/models"
	"github.com/Williamsdg/sportspredictions/internal/scoresync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

// SyncService is the sync surface the handlers call
type SyncService interface {
	Target(ctx context.Context, sportSlug string) (scoresync.Target, error)
	Sync(ctx context.Context, sportSlug string, unit models.SyncUnit) (*scoresync.Result, error)
	SyncBasketballMonth(ctx context.Context, year int, month time.Month) (*scoresync.Batch, error)
	RunScheduled(ctx context.Context, now time.Time) (*scoresync.ScheduledRun, error)
	GamesNeedingUpdate(ctx context.Context, sportSlug string, now time.Time) ([]scoresync.PendingGame, error)
	Location() *time.Location
}

// Grader runs a grading pass
type Grader interface {
	GradeCompletedPicks(ctx context.Context) (grading.Summary, error)
}

// PickService applies the pick rules
type PickService interface {
	Submit(ctx context.Context, userID string, gameID, pickedTeamID int, now time.Time) (*models.Pick, error)
	Delete(ctx context.Context, userID string, gameID int, now time.Time) error
	List(ctx context.Context, userID, sportSlug string, week *int) ([]models.PickWithGame, error)
	Record(ctx context.Context, userID, sportSlug string) (*models.PickRecord, error)
}

// GameLister lists a season's games
type GameLister interface {
	ListBySeason(ctx context.Context, seasonID int, week *int) ([]models.GameWithTeams, error)
}

// Deps are the collaborators of the HTTP surface
type Deps struct {
	Sync           SyncService
	Grader         Grader
	Picks          PickService
	Games          GameLister
	Auth           *auth.Authenticator
	CronSecret     string
	AllowedOrigins []string
	Health         func(ctx context.Context) error
	Now            func() time.Time
}

type handlers struct {
	Deps
}

func (h *handlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// NewRouter builds the chi router with middleware and every route
func NewRouter(deps Deps) http.Handler {
	h := &handlers{Deps: deps}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/sync", h.handleSync)
		r.Get("/sync", h.handleSyncStatus)
		r.Get("/games", h.handleGames)

		r.Group(func(r chi.Router) {
			r.Use(h.requireCronSecret)
			r.Get("/cron/sync", h.handleCronSync)
			r.Post("/grade", h.handleGrade)
		})

		r.Route("/picks", func(r chi.Router) {
			r.Use(deps.Auth.Middleware)
			r.Get("/", h.handleListPicks)
			r.Post("/", h.handleSubmitPick)
			r.Delete("/", h.handleDeletePick)
			r.Get("/record", h.handlePickRecord)
		})
	})

	return r
}

// Server wraps the HTTP server lifecycle
type Server struct {
	srv *http.Server
}

// NewServer creates a server for handler on addr
func NewServer(addr string, handler http.Handler) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Run serves until Shutdown
func (s *Server) Run(_ context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.srv.Addr, err)
	}

	log.Info().Str("addr", s.srv.Addr).Msg("HTTP server listening")
	err = s.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
