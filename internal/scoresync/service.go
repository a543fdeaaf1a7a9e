package scoresync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Williamsdg/sportspredictions/internal/grading"
	"github.com/Williamsdg/sportspredictions/internal/metrics"
	"github.com/Williamsdg/sportspredictions/internal/models"
	"github.com/Williamsdg/sportspredictions/internal/repository"

	"github.com/rs/zerolog/log"
)

var (
	// ErrInvalidSport is returned for a sport discriminator other than football or basketball
	ErrInvalidSport = errors.New("invalid sport")
	// ErrInvalidUnit is returned when a unit lacks the date or week its sport needs
	ErrInvalidUnit = errors.New("invalid sync unit")
	// ErrSportNotFound is returned when the sport has not been seeded
	ErrSportNotFound = errors.New("sport not found")
	// ErrNoActiveSeason is returned when the sport has no active season
	ErrNoActiveSeason = errors.New("no active season")
)

// SportStore looks up sports by slug
type SportStore interface {
	GetBySlug(ctx context.Context, slug string) (*models.Sport, error)
}

// SeasonStore looks up a sport's active season
type SeasonStore interface {
	GetActive(ctx context.Context, sportID int) (*models.Season, error)
}

// Grader grades picks on completed games
type Grader interface {
	GradeCompletedPicks(ctx context.Context) (grading.Summary, error)
}

// Batch aggregates the units of one multi-unit sync
type Batch struct {
	Synced  int       `json:"synced"`
	Skipped int       `json:"skipped"`
	Units   []*Result `json:"units"`
}

func (b *Batch) add(r *Result) {
	b.Synced += r.Synced
	b.Skipped += r.Skipped
	b.Units = append(b.Units, r)
}

// ScheduledRun is the report of the combined sync-then-grade entry point
type ScheduledRun struct {
	Success      bool              `json:"success"`
	Timestamp    time.Time         `json:"timestamp"`
	Results      map[string]*Batch `json:"results"`
	PicksUpdated int               `json:"picksUpdated"`
	Grading      grading.Summary   `json:"grading"`
	Error        string            `json:"error,omitempty"`
}

// PendingGame is a game today that has not reached FINAL
type PendingGame struct {
	ID      int               `json:"id"`
	Matchup string            `json:"matchup"`
	Status  models.GameStatus `json:"status"`
}

// Service resolves sports and seasons for the engine and runs multi-unit syncs
type Service struct {
	engine  *Engine
	sports  SportStore
	seasons SeasonStore
	grader  Grader
	loc     *time.Location
}

// NewService creates a sync service. Calendar days are computed in loc.
func NewService(engine *Engine, sports SportStore, seasons SeasonStore, grader Grader, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		engine:  engine,
		sports:  sports,
		seasons: seasons,
		grader:  grader,
		loc:     loc,
	}
}

// Location returns the zone used for calendar days
func (s *Service) Location() *time.Location {
	return s.loc
}

// Target resolves a sport slug to the sport and its active season
func (s *Service) Target(ctx context.Context, sportSlug string) (Target, error) {
	sport, err := s.sport(ctx, sportSlug)
	if err != nil {
		return Target{}, err
	}

	season, err := s.seasons.GetActive(ctx, sport.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return Target{}, fmt.Errorf("%s: %w", sport.Slug, ErrNoActiveSeason)
	}
	if err != nil {
		return Target{}, fmt.Errorf("failed to get active season: %w", err)
	}

	return Target{Sport: sport, Season: season}, nil
}

// ActiveSeason returns the active season of a sport
func (s *Service) ActiveSeason(ctx context.Context, sportSlug string) (*models.Season, error) {
	target, err := s.Target(ctx, sportSlug)
	if err != nil {
		return nil, err
	}
	return target.Season, nil
}

// Sync syncs one unit of a sport into its active season
func (s *Service) Sync(ctx context.Context, sportSlug string, unit models.SyncUnit) (*Result, error) {
	target, err := s.Target(ctx, sportSlug)
	if err != nil {
		return nil, err
	}
	return s.engine.Sync(ctx, target, unit)
}

// SyncBasketballRecent syncs yesterday and today. Each day is fetched on its
// own; a failure on one day does not stop the other.
func (s *Service) SyncBasketballRecent(ctx context.Context, now time.Time) (*Batch, error) {
	today := now.In(s.loc)
	return s.syncBasketballDays(ctx, []time.Time{today.AddDate(0, 0, -1), today})
}

// SyncBasketballMonth syncs every date of a month that the schedule lists
// with at least one game
func (s *Service) SyncBasketballMonth(ctx context.Context, year int, month time.Month) (*Batch, error) {
	sched, err := s.engine.fetcher.FetchBasketballSchedule(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %04d-%02d schedule: %w", year, month, err)
	}

	var days []time.Time
	for _, d := range sched.Dates {
		if d.Games == 0 {
			continue
		}
		day, ok := parseScheduleDate(d.Date, s.loc)
		if !ok {
			log.Warn().Str("date", d.Date).Msg("Skipping unparsable schedule date")
			continue
		}
		days = append(days, day)
	}

	log.Info().
		Int("year", year).
		Int("month", int(month)).
		Int("days", len(days)).
		Msg("Syncing basketball month")

	return s.syncBasketballDays(ctx, days)
}

func (s *Service) syncBasketballDays(ctx context.Context, days []time.Time) (*Batch, error) {
	target, err := s.Target(ctx, models.SportBasketball)
	if err != nil {
		return nil, err
	}

	batch := &Batch{Units: make([]*Result, 0, len(days))}
	var errs []error
	for _, day := range days {
		res, err := s.engine.Sync(ctx, target, models.BasketballDay(day))
		if err != nil {
			log.Error().Err(err).Str("unit", day.Format("2006-01-02")).Msg("Sync unit failed")
			errs = append(errs, err)
			continue
		}
		batch.add(res)
	}

	return batch, errors.Join(errs...)
}

// RunScheduled syncs basketball for yesterday and today, then grades picks.
// A day that fails to store does not stop grading: the run comes back with
// Success false, the units that did complete, and the joined error.
func (s *Service) RunScheduled(ctx context.Context, now time.Time) (*ScheduledRun, error) {
	start := time.Now()
	defer func() { metrics.RecordScheduledRun(time.Since(start).Seconds()) }()

	batch, syncErr := s.SyncBasketballRecent(ctx, now)
	if batch == nil {
		return nil, fmt.Errorf("failed to sync basketball: %w", syncErr)
	}
	if syncErr != nil {
		syncErr = fmt.Errorf("failed to sync basketball: %w", syncErr)
	}

	sum, gradeErr := s.grader.GradeCompletedPicks(ctx)
	if gradeErr != nil {
		gradeErr = fmt.Errorf("failed to grade picks: %w", gradeErr)
	}

	err := errors.Join(syncErr, gradeErr)
	run := &ScheduledRun{
		Success:      err == nil,
		Timestamp:    now.UTC(),
		Results:      map[string]*Batch{models.SportBasketball: batch},
		PicksUpdated: sum.PicksUpdated,
		Grading:      sum,
	}

	event := log.Info()
	if err != nil {
		run.Error = err.Error()
		event = log.Error().Err(err)
	}
	event.
		Bool("success", run.Success).
		Int("synced", batch.Synced).
		Int("skipped", batch.Skipped).
		Int("picks_updated", sum.PicksUpdated).
		Dur("duration", time.Since(start)).
		Msg("Scheduled run complete")

	return run, err
}

// GamesNeedingUpdate lists the sport's games starting today that are not yet FINAL
func (s *Service) GamesNeedingUpdate(ctx context.Context, sportSlug string, now time.Time) ([]PendingGame, error) {
	sport, err := s.sport(ctx, sportSlug)
	if err != nil {
		return nil, err
	}

	y, m, d := now.In(s.loc).Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, s.loc)
	games, err := s.engine.games.ListNeedingUpdate(ctx, sport.ID, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to list games needing update: %w", err)
	}

	pending := make([]PendingGame, 0, len(games))
	for i := range games {
		pending = append(pending, PendingGame{
			ID:      games[i].ID,
			Matchup: games[i].Matchup(),
			Status:  games[i].Status,
		})
	}
	return pending, nil
}

func (s *Service) sport(ctx context.Context, sportSlug string) (*models.Sport, error) {
	slug, err := models.ParseSport(sportSlug)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSport, sportSlug)
	}
	sport, err := s.sports.GetBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", slug, ErrSportNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sport: %w", err)
	}
	return sport, nil
}

var scheduleLayouts = []string{"2006-01-02", "2006/01/02", "01/02/2006", "01-02-2006"}

func parseScheduleDate(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range scheduleLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
