package api

import (
	"database/sql"
	"time"

	"github.com/Williamsdg/sportspredictions/internal/models"
)

type teamView struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	ShortName    string  `json:"shortName"`
	Abbreviation string  `json:"abbreviation"`
	Conference   *string `json:"conference"`
	PrimaryColor *string `json:"primaryColor"`
}

type gameView struct {
	ID         int       `json:"id"`
	ExternalID *string   `json:"externalId"`
	SportID    int       `json:"sportId"`
	SeasonID   int       `json:"seasonId"`
	HomeTeamID int       `json:"homeTeamId"`
	AwayTeamID int       `json:"awayTeamId"`
	GameTime   time.Time `json:"gameTime"`
	Week       int       `json:"week"`
	Venue      *string   `json:"venue"`
	Status     string    `json:"status"`
	HomeScore  *int32    `json:"homeScore"`
	AwayScore  *int32    `json:"awayScore"`
	HomeTeam   *teamView `json:"homeTeam,omitempty"`
	AwayTeam   *teamView `json:"awayTeam,omitempty"`
}

type seasonView struct {
	ID        int       `json:"id"`
	SportID   int       `json:"sportId"`
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsActive  bool      `json:"isActive"`
}

type pickView struct {
	ID           int        `json:"id"`
	UserID       string     `json:"userId"`
	GameID       int        `json:"gameId"`
	PickedTeamID int        `json:"pickedTeamId"`
	IsCorrect    *bool      `json:"isCorrect"`
	GradedAt     *time.Time `json:"gradedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	Game         *gameView  `json:"game,omitempty"`
	PickedTeam   *teamView  `json:"pickedTeam,omitempty"`
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func nullInt(n sql.NullInt32) *int32 {
	if !n.Valid {
		return nil
	}
	return &n.Int32
}

func newTeamView(t models.Team) *teamView {
	return &teamView{
		ID:           t.ID,
		Name:         t.Name,
		ShortName:    t.ShortName,
		Abbreviation: t.Abbreviation,
		Conference:   nullString(t.Conference),
		PrimaryColor: nullString(t.PrimaryColor),
	}
}

func newGameView(g models.Game) *gameView {
	return &gameView{
		ID:         g.ID,
		ExternalID: nullString(g.ExternalID),
		SportID:    g.SportID,
		SeasonID:   g.SeasonID,
		HomeTeamID: g.HomeTeamID,
		AwayTeamID: g.AwayTeamID,
		GameTime:   g.GameTime,
		Week:       g.Week,
		Venue:      nullString(g.Venue),
		Status:     string(g.Status),
		HomeScore:  nullInt(g.HomeScore),
		AwayScore:  nullInt(g.AwayScore),
	}
}

func newGameWithTeamsView(g models.GameWithTeams) *gameView {
	v := newGameView(g.Game)
	v.HomeTeam = newTeamView(g.HomeTeam)
	v.AwayTeam = newTeamView(g.AwayTeam)
	return v
}

func newSeasonView(s *models.Season) *seasonView {
	return &seasonView{
		ID:        s.ID,
		SportID:   s.SportID,
		Name:      s.Name,
		Year:      s.Year,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		IsActive:  s.IsActive,
	}
}

func newPickView(p models.Pick) *pickView {
	v := &pickView{
		ID:           p.ID,
		UserID:       p.UserID,
		GameID:       p.GameID,
		PickedTeamID: p.PickedTeamID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.IsCorrect.Valid {
		v.IsCorrect = &p.IsCorrect.Bool
	}
	if p.GradedAt.Valid {
		v.GradedAt = &p.GradedAt.Time
	}
	return v
}

func newPickWithGameView(p models.PickWithGame) *pickView {
	v := newPickView(p.Pick)
	v.Game = newGameWithTeamsView(p.Game)
	v.PickedTeam = newTeamView(p.PickedTeam)
	return v
}
