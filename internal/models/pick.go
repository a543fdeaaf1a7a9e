package models

import (
	"database/sql"
	"time"
)

// Pick is a user's predicted winner for one game
type Pick struct {
	ID           int          `db:"id"`
	UserID       string       `db:"user_id"`
	GameID       int          `db:"game_id"`
	PickedTeamID int          `db:"picked_team_id"`
	IsCorrect    sql.NullBool `db:"is_correct"`
	GradedAt     sql.NullTime `db:"graded_at"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

// IsGraded reports whether correctness has been assigned
func (p *Pick) IsGraded() bool {
	return p.IsCorrect.Valid
}

// PickWithGame is a pick joined with its game, participants and picked team
type PickWithGame struct {
	Pick
	Game       GameWithTeams
	PickedTeam Team
}

// PickRecord summarizes a user's graded and pending picks
type PickRecord struct {
	Total     int     `json:"total"`
	Correct   int     `json:"correct"`
	Incorrect int     `json:"incorrect"`
	Pending   int     `json:"pending"`
	WinRate   float64 `json:"winRate"`
}

// ComputeWinRate fills WinRate from the graded counts
func (r *PickRecord) ComputeWinRate() {
	graded := r.Correct + r.Incorrect
	if graded == 0 {
		r.WinRate = 0
		return
	}
	r.WinRate = float64(r.Correct) / float64(graded)
}
