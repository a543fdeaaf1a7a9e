package models

import (
	"database/sql"
	"fmt"
	"time"
)

// GameStatus is the lifecycle state of a game
type GameStatus string

const (
	StatusScheduled  GameStatus = "SCHEDULED"
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusFinal      GameStatus = "FINAL"
)

// Rank orders statuses along the only permitted direction of travel
func (s GameStatus) Rank() int {
	switch s {
	case StatusInProgress:
		return 1
	case StatusFinal:
		return 2
	default:
		return 0
	}
}

// Valid reports whether s is one of the known statuses
func (s GameStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusFinal:
		return true
	}
	return false
}

// Game represents a scheduled or completed matchup
type Game struct {
	ID         int            `db:"id"`
	ExternalID sql.NullString `db:"external_id"`
	SportID    int            `db:"sport_id"`
	SeasonID   int            `db:"season_id"`
	HomeTeamID int            `db:"home_team_id"`
	AwayTeamID int            `db:"away_team_id"`
	GameTime   time.Time      `db:"game_time"`
	Week       int            `db:"week"`
	Venue      sql.NullString `db:"venue"`
	Status     GameStatus     `db:"status"`

	HomeScore sql.NullInt32 `db:"home_score"`
	AwayScore sql.NullInt32 `db:"away_score"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// GameWithTeams is a game joined with both participants
type GameWithTeams struct {
	Game
	HomeTeam Team
	AwayTeam Team
}

// Matchup renders the game as "Away @ Home"
func (g *GameWithTeams) Matchup() string {
	return fmt.Sprintf("%s @ %s", g.AwayTeam.ShortName, g.HomeTeam.ShortName)
}

// State returns the mutable part of the game
func (g *Game) State() GameState {
	return GameState{Status: g.Status, HomeScore: g.HomeScore, AwayScore: g.AwayScore}
}

// HasStarted reports whether picks on the game are locked at now
func (g *Game) HasStarted(now time.Time) bool {
	return !now.Before(g.GameTime)
}

// HasTeam reports whether teamID is one of the participants
func (g *Game) HasTeam(teamID int) bool {
	return teamID == g.HomeTeamID || teamID == g.AwayTeamID
}

// Winner returns the winning team, or false when the game cannot be decided:
// not final, a score is missing, or the scores are level.
func (g *Game) Winner() (int, bool) {
	if g.Status != StatusFinal || !g.HomeScore.Valid || !g.AwayScore.Valid {
		return 0, false
	}
	switch {
	case g.HomeScore.Int32 > g.AwayScore.Int32:
		return g.HomeTeamID, true
	case g.AwayScore.Int32 > g.HomeScore.Int32:
		return g.AwayTeamID, true
	default:
		return 0, false
	}
}

// IsTie reports a final game with level scores
func (g *Game) IsTie() bool {
	return g.Status == StatusFinal && g.HomeScore.Valid && g.AwayScore.Valid &&
		g.HomeScore.Int32 == g.AwayScore.Int32
}

// GameState is the status and score triple a sync is allowed to change
type GameState struct {
	Status    GameStatus
	HomeScore sql.NullInt32
	AwayScore sql.NullInt32
}

// Locked reports a final game whose scores are both known and therefore frozen
func (s GameState) Locked() bool {
	return s.Status == StatusFinal && s.HomeScore.Valid && s.AwayScore.Valid
}

// MergeGameState applies an incoming observation to the stored state.
// Status only moves forward, a locked final is never touched, an observation
// older than the stored status is ignored, and a missing incoming score keeps
// the stored one. The games upsert in the repository encodes the same rule in SQL.
func MergeGameState(existing, incoming GameState) GameState {
	if existing.Locked() || existing.Status.Rank() > incoming.Status.Rank() {
		return existing
	}

	merged := GameState{
		Status:    incoming.Status,
		HomeScore: incoming.HomeScore,
		AwayScore: incoming.AwayScore,
	}
	if !merged.HomeScore.Valid {
		merged.HomeScore = existing.HomeScore
	}
	if !merged.AwayScore.Valid {
		merged.AwayScore = existing.AwayScore
	}
	return merged
}

// GameInput is the create-side payload of a sync upsert
type GameInput struct {
	ExternalID string
	SportID    int
	SeasonID   int
	HomeTeamID int
	AwayTeamID int
	GameTime   time.Time
	Week       int
	State      GameState
}

// ToGame converts the input to a new Game row
func (gi *GameInput) ToGame() *Game {
	return &Game{
		ExternalID: sql.NullString{String: gi.ExternalID, Valid: gi.ExternalID != ""},
		SportID:    gi.SportID,
		SeasonID:   gi.SeasonID,
		HomeTeamID: gi.HomeTeamID,
		AwayTeamID: gi.AwayTeamID,
		GameTime:   gi.GameTime,
		Week:       gi.Week,
		Status:     gi.State.Status,
		HomeScore:  gi.State.HomeScore,
		AwayScore:  gi.State.AwayScore,
	}
}

// UpsertResult reports what a sync upsert did to the stored row
type UpsertResult struct {
	ID      int
	Created bool
	Updated bool
}
