package testutil

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/Williamsdg/sportspredictions/internal/client"
	"github.com/Williamsdg/sportspredictions/internal/models"
)

// Fetcher serves canned scoreboards keyed by sport and unit label. Units with
// no entry return an empty scoreboard; units listed in Failures return an
// upstream error.
type Fetcher struct {
	mu        sync.Mutex
	boards    map[string]*models.Scoreboard
	failures  map[string]bool
	schedules map[string]*models.Schedule
	calls     []string
}

// NewFetcher returns a fetcher with no data
func NewFetcher() *Fetcher {
	return &Fetcher{
		boards:    make(map[string]*models.Scoreboard),
		failures:  make(map[string]bool),
		schedules: make(map[string]*models.Schedule),
	}
}

func fetchKey(sport string, unit models.SyncUnit) string {
	return sport + "/" + unit.Label()
}

// SetScoreboard registers the games returned for a unit
func (f *Fetcher) SetScoreboard(sport string, unit models.SyncUnit, games ...models.ScoreboardEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.boards[fetchKey(sport, unit)] = &models.Scoreboard{Games: games}
	delete(f.failures, fetchKey(sport, unit))
}

// Fail makes a unit return an upstream failure
func (f *Fetcher) Fail(sport string, unit models.SyncUnit) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[fetchKey(sport, unit)] = true
}

// SetSchedule registers a basketball month schedule
func (f *Fetcher) SetSchedule(year int, month time.Month, dates ...models.ScheduleDate) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.schedules[fmt.Sprintf("%04d-%02d", year, month)] = &models.Schedule{Dates: dates}
}

// Calls returns the fetched keys in order
func (f *Fetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *Fetcher) FetchScoreboard(_ context.Context, sport string, unit models.SyncUnit) (*models.Scoreboard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := fetchKey(sport, unit)
	f.calls = append(f.calls, key)
	if f.failures[key] {
		return nil, fmt.Errorf("%s: unexpected status 500: %w", key, client.ErrUpstream)
	}
	if board, ok := f.boards[key]; ok {
		return board, nil
	}
	return &models.Scoreboard{}, nil
}

func (f *Fetcher) FetchBasketballSchedule(_ context.Context, year int, month time.Month) (*models.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := fmt.Sprintf("%04d-%02d", year, month)
	f.calls = append(f.calls, "schedule/"+key)
	if sched, ok := f.schedules[key]; ok {
		return sched, nil
	}
	return nil, fmt.Errorf("schedule %s: unexpected status 404: %w", key, client.ErrUpstream)
}

// Record builds a raw scoreboard record. Empty scores are omitted.
func Record(gameID string, start time.Time, state, homeSeo, homeScore, awaySeo, awayScore string) models.ScoreboardEntry {
	return models.ScoreboardEntry{Game: models.ScoreboardGame{
		GameID:         models.FlexString(gameID),
		StartTimeEpoch: models.FlexString(strconv.FormatInt(start.Unix(), 10)),
		GameState:      state,
		Home: models.ScoreboardSide{
			Score: models.FlexString(homeScore),
			Names: models.ScoreboardNames{Seo: homeSeo},
		},
		Away: models.ScoreboardSide{
			Score: models.FlexString(awayScore),
			Names: models.ScoreboardNames{Seo: awaySeo},
		},
	}}
}
