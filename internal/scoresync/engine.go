// Package scoresync imports scoreboard results into stored games.
package scoresync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Williamsdg/sportspredictions/internal/metrics"
	"github.com/Williamsdg/sportspredictions/internal/models"
	"github.com/Williamsdg/sportspredictions/internal/parser"
	"github.com/Williamsdg/sportspredictions/internal/resolver"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Fetcher retrieves raw scoreboard data
type Fetcher interface {
	FetchScoreboard(ctx context.Context, sport string, unit models.SyncUnit) (*models.Scoreboard, error)
	FetchBasketballSchedule(ctx context.Context, year int, month time.Month) (*models.Schedule, error)
}

// TeamStore lists a sport's teams
type TeamStore interface {
	ListBySport(ctx context.Context, sportID int) ([]models.Team, error)
}

// GameStore writes synced games
type GameStore interface {
	UpsertByExternalID(ctx context.Context, in *models.GameInput) (*models.UpsertResult, error)
	ListNeedingUpdate(ctx context.Context, sportID int, from, to time.Time) ([]models.GameWithTeams, error)
}

// Outcome distinguishes a quiet day from an outage
type Outcome string

const (
	OutcomeSynced          Outcome = "synced"
	OutcomeNoGames         Outcome = "no_games"
	OutcomeUpstreamFailure Outcome = "upstream_failure"
)

// Target is the sport and season a sync writes into
type Target struct {
	Sport  *models.Sport
	Season *models.Season
}

// Result reports one synced unit
type Result struct {
	Sport   string  `json:"sport"`
	Unit    string  `json:"unit"`
	Outcome Outcome `json:"outcome"`
	Synced  int     `json:"synced"`
	Skipped int     `json:"skipped"`
	Total   int     `json:"total"`
	Created int     `json:"created"`
	Error   string  `json:"error,omitempty"`

	// Err is the fetch error behind an upstream failure
	Err error `json:"-"`
}

// Engine syncs one scoreboard unit at a time
type Engine struct {
	fetcher  Fetcher
	teams    TeamStore
	games    GameStore
	resolver *resolver.Resolver
}

// NewEngine creates a sync engine
func NewEngine(fetcher Fetcher, teams TeamStore, games GameStore, r *resolver.Resolver) *Engine {
	return &Engine{
		fetcher:  fetcher,
		teams:    teams,
		games:    games,
		resolver: r,
	}
}

// Sync fetches one unit and upserts every record whose teams are both known.
// A failed fetch is reported as OutcomeUpstreamFailure with a nil error;
// only invalid units and storage failures return an error.
func (e *Engine) Sync(ctx context.Context, target Target, unit models.SyncUnit) (*Result, error) {
	sport := target.Sport.Slug
	if err := unit.Validate(sport); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUnit, err)
	}

	start := time.Now()
	res := &Result{Sport: sport, Unit: unit.Label()}
	logger := log.With().
		Str("run_id", uuid.NewString()).
		Str("sport", sport).
		Str("unit", res.Unit).
		Logger()

	board, err := e.fetcher.FetchScoreboard(ctx, sport, unit)
	if err != nil {
		res.Outcome = OutcomeUpstreamFailure
		res.Err = err
		res.Error = err.Error()
		metrics.RecordSync(sport, string(res.Outcome), 0, 0, time.Since(start).Seconds())
		metrics.RecordError("sync", "upstream")
		logger.Warn().Err(err).Msg("Scoreboard unavailable, no data for unit")
		return res, nil
	}

	res.Total = len(board.Games)
	if res.Total == 0 {
		res.Outcome = OutcomeNoGames
		metrics.RecordSync(sport, string(res.Outcome), 0, 0, time.Since(start).Seconds())
		logger.Info().Msg("No games scheduled for unit")
		return res, nil
	}

	teams, err := e.teams.ListBySport(ctx, target.Sport.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s teams: %w", sport, err)
	}
	byAbbr := models.TeamsByAbbreviation(teams)

	for _, entry := range board.Games {
		raw := entry.Game
		externalID := strings.TrimSpace(raw.GameID.String())

		homeAbbr := e.resolver.Resolve(raw.Home.Names.Seo)
		awayAbbr := e.resolver.Resolve(raw.Away.Names.Seo)
		home, okHome := byAbbr[homeAbbr]
		away, okAway := byAbbr[awayAbbr]
		if !okHome || !okAway {
			res.Skipped++
			logger.Debug().
				Str("external_id", externalID).
				Str("home", raw.Home.Names.Seo).
				Str("away", raw.Away.Names.Seo).
				Bool("home_known", okHome).
				Bool("away_known", okAway).
				Msg("Skipping game with unknown team")
			continue
		}

		gameTime, ok := parser.ParseStartTime(raw.StartTimeEpoch.String())
		if externalID == "" || !ok || home.ID == away.ID {
			res.Skipped++
			logger.Warn().
				Str("external_id", externalID).
				Str("start_time_epoch", raw.StartTimeEpoch.String()).
				Msg("Skipping malformed game record")
			continue
		}

		in := &models.GameInput{
			ExternalID: externalID,
			SportID:    target.Sport.ID,
			SeasonID:   target.Season.ID,
			HomeTeamID: home.ID,
			AwayTeamID: away.ID,
			GameTime:   gameTime,
			Week:       unit.WeekFor(sport),
			State:      parser.ParseGameState(raw),
		}

		up, err := e.games.UpsertByExternalID(ctx, in)
		if err != nil {
			metrics.RecordError("sync", "storage")
			return nil, fmt.Errorf("failed to sync game %s: %w", externalID, err)
		}

		res.Synced++
		if up.Created {
			res.Created++
		}
	}

	res.Outcome = OutcomeSynced
	duration := time.Since(start)
	metrics.RecordSync(sport, string(res.Outcome), res.Synced, res.Skipped, duration.Seconds())
	logger.Info().
		Int("synced", res.Synced).
		Int("skipped", res.Skipped).
		Int("total", res.Total).
		Int("created", res.Created).
		Dur("duration", duration).
		Msg("Unit synced")

	return res, nil
}
