// Package testutil provides an in-memory storage collaborator for package tests.
// It mirrors the repository contracts, including the forward-only game upsert
// and the grade-once pick update.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Williamsdg/sportspredictions/internal/models"
	"github.com/Williamsdg/sportspredictions/internal/repository"
)

// Store holds every table behind one mutex. Sub-stores expose the same
// method sets as the Postgres repositories.
type Store struct {
	mu      sync.Mutex
	nextID  int
	sports  map[int]*models.Sport
	seasons map[int]*models.Season
	teams   map[int]*models.Team
	games   map[int]*models.Game
	picks   map[int]*models.Pick

	// FailWith, when set, is returned by every write
	FailWith error
	// FailUpsert fails the upserts of the listed external ids only
	FailUpsert map[string]error

	Sports  *Sports
	Seasons *Seasons
	Teams   *Teams
	Games   *Games
	Picks   *Picks
}

// NewStore returns an empty store
func NewStore() *Store {
	s := &Store{
		sports:  make(map[int]*models.Sport),
		seasons: make(map[int]*models.Season),
		teams:   make(map[int]*models.Team),
		games:   make(map[int]*models.Game),
		picks:   make(map[int]*models.Pick),
	}
	s.Sports = &Sports{s}
	s.Seasons = &Seasons{s}
	s.Teams = &Teams{s}
	s.Games = &Games{s}
	s.Picks = &Picks{s}
	return s
}

func (s *Store) id() int {
	s.nextID++
	return s.nextID
}

// AddSport inserts a sport and returns it
func (s *Store) AddSport(slug string) *models.Sport {
	sport := &models.Sport{Slug: slug, Name: slug}
	if err := s.Sports.Upsert(context.Background(), sport); err != nil {
		panic(err)
	}
	return sport
}

// AddSeason inserts an active season for sport
func (s *Store) AddSeason(sport *models.Sport, year int) *models.Season {
	season := &models.Season{
		SportID:   sport.ID,
		Name:      fmt.Sprintf("%d-%02d", year, (year+1)%100),
		Year:      year,
		StartDate: time.Date(year, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(year+1, 4, 30, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	}
	if err := s.Seasons.Upsert(context.Background(), season); err != nil {
		panic(err)
	}
	return season
}

// AddTeam inserts a team for sport
func (s *Store) AddTeam(sport *models.Sport, abbreviation, shortName, conference string) *models.Team {
	team := &models.Team{
		SportID:      sport.ID,
		Name:         shortName,
		ShortName:    shortName,
		Abbreviation: abbreviation,
	}
	if conference != "" {
		team.Conference.String, team.Conference.Valid = conference, true
	}
	if err := s.Teams.Upsert(context.Background(), team); err != nil {
		panic(err)
	}
	return team
}

// AddGame inserts a game as-is
func (s *Store) AddGame(game *models.Game) *models.Game {
	if err := s.Games.Create(context.Background(), game); err != nil {
		panic(err)
	}
	return game
}

// AddPick inserts a pick as-is, including any grading fields
func (s *Store) AddPick(pick *models.Pick) *models.Pick {
	s.mu.Lock()
	defer s.mu.Unlock()

	pick.ID = s.id()
	pick.CreatedAt = time.Now()
	pick.UpdatedAt = pick.CreatedAt
	cp := *pick
	s.picks[cp.ID] = &cp
	return pick
}

// GameByExternalID returns a copy of the stored game, or nil
func (s *Store) GameByExternalID(externalID string) *models.Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.games {
		if g.ExternalID.Valid && g.ExternalID.String == externalID {
			cp := *g
			return &cp
		}
	}
	return nil
}

// GameCount returns the number of stored games
func (s *Store) GameCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

// Pick returns a copy of the stored pick, or nil
func (s *Store) Pick(id int) *models.Pick {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.picks[id]; ok {
		cp := *p
		return &cp
	}
	return nil
}

func (s *Store) withTeams(g *models.Game) models.GameWithTeams {
	out := models.GameWithTeams{Game: *g}
	if t, ok := s.teams[g.HomeTeamID]; ok {
		out.HomeTeam = *t
	}
	if t, ok := s.teams[g.AwayTeamID]; ok {
		out.AwayTeam = *t
	}
	return out
}

func sortGames(games []*models.Game) {
	sort.Slice(games, func(i, j int) bool {
		if !games[i].GameTime.Equal(games[j].GameTime) {
			return games[i].GameTime.Before(games[j].GameTime)
		}
		return games[i].ID < games[j].ID
	})
}

// Sports mirrors repository.SportRepository
type Sports struct{ s *Store }

func (r *Sports) GetBySlug(_ context.Context, slug string) (*models.Sport, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, sp := range r.s.sports {
		if sp.Slug == slug {
			cp := *sp
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("sport %s: %w", slug, repository.ErrNotFound)
}

func (r *Sports) Upsert(_ context.Context, sport *models.Sport) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	for _, sp := range r.s.sports {
		if sp.Slug == sport.Slug {
			sp.Name = sport.Name
			sport.ID = sp.ID
			return nil
		}
	}
	sport.ID = r.s.id()
	cp := *sport
	r.s.sports[cp.ID] = &cp
	return nil
}

// Seasons mirrors repository.SeasonRepository
type Seasons struct{ s *Store }

func (r *Seasons) GetActive(_ context.Context, sportID int) (*models.Season, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var best *models.Season
	for _, se := range r.s.seasons {
		if se.SportID == sportID && se.IsActive && (best == nil || se.Year > best.Year) {
			best = se
		}
	}
	if best == nil {
		return nil, fmt.Errorf("active season for sport %d: %w", sportID, repository.ErrNotFound)
	}
	cp := *best
	return &cp, nil
}

func (r *Seasons) Upsert(_ context.Context, season *models.Season) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	if season.IsActive {
		for _, se := range r.s.seasons {
			if se.SportID == season.SportID && se.Year != season.Year {
				se.IsActive = false
			}
		}
	}
	for _, se := range r.s.seasons {
		if se.SportID == season.SportID && se.Year == season.Year {
			season.ID = se.ID
			*se = *season
			return nil
		}
	}
	season.ID = r.s.id()
	cp := *season
	r.s.seasons[cp.ID] = &cp
	return nil
}

// Teams mirrors repository.TeamRepository
type Teams struct{ s *Store }

func (r *Teams) Upsert(_ context.Context, team *models.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	now := time.Now()
	for _, t := range r.s.teams {
		if t.SportID == team.SportID && t.Abbreviation == team.Abbreviation {
			team.ID, team.CreatedAt, team.UpdatedAt = t.ID, t.CreatedAt, now
			*t = *team
			return nil
		}
	}
	team.ID, team.CreatedAt, team.UpdatedAt = r.s.id(), now, now
	cp := *team
	r.s.teams[cp.ID] = &cp
	return nil
}

func (r *Teams) ListBySport(_ context.Context, sportID int) ([]models.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var teams []models.Team
	for _, t := range r.s.teams {
		if t.SportID == sportID {
			teams = append(teams, *t)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams, nil
}

// Games mirrors repository.GameRepository
type Games struct{ s *Store }

func (r *Games) UpsertByExternalID(_ context.Context, in *models.GameInput) (*models.UpsertResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.FailWith != nil {
		return nil, r.s.FailWith
	}
	if err := r.s.FailUpsert[in.ExternalID]; err != nil {
		return nil, err
	}

	for _, g := range r.s.games {
		if !g.ExternalID.Valid || g.ExternalID.String != in.ExternalID {
			continue
		}
		merged := models.MergeGameState(g.State(), in.State)
		if merged == g.State() {
			return &models.UpsertResult{ID: g.ID}, nil
		}
		g.Status, g.HomeScore, g.AwayScore = merged.Status, merged.HomeScore, merged.AwayScore
		g.UpdatedAt = time.Now()
		return &models.UpsertResult{ID: g.ID, Updated: true}, nil
	}

	if in.HomeTeamID == in.AwayTeamID {
		return nil, fmt.Errorf("failed to upsert game %s: home and away team are the same", in.ExternalID)
	}
	g := in.ToGame()
	g.ID = r.s.id()
	g.CreatedAt = time.Now()
	g.UpdatedAt = g.CreatedAt
	r.s.games[g.ID] = g
	return &models.UpsertResult{ID: g.ID, Created: true}, nil
}

func (r *Games) Create(_ context.Context, game *models.Game) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	if game.Status == "" {
		game.Status = models.StatusScheduled
	}
	game.ID = r.s.id()
	game.CreatedAt = time.Now()
	game.UpdatedAt = game.CreatedAt
	cp := *game
	r.s.games[cp.ID] = &cp
	return nil
}

func (r *Games) GetByID(_ context.Context, id int) (*models.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if g, ok := r.s.games[id]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, fmt.Errorf("game %d: %w", id, repository.ErrNotFound)
}

func (r *Games) ListBySeason(_ context.Context, seasonID int, week *int) ([]models.GameWithTeams, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []*models.Game
	for _, g := range r.s.games {
		if g.SeasonID == seasonID && (week == nil || g.Week == *week) {
			matched = append(matched, g)
		}
	}
	sortGames(matched)

	out := make([]models.GameWithTeams, 0, len(matched))
	for _, g := range matched {
		out = append(out, r.s.withTeams(g))
	}
	return out, nil
}

func (r *Games) ListNeedingUpdate(_ context.Context, sportID int, from, to time.Time) ([]models.GameWithTeams, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []*models.Game
	for _, g := range r.s.games {
		if g.SportID != sportID || g.Status == models.StatusFinal {
			continue
		}
		if g.GameTime.Before(from) || !g.GameTime.Before(to) {
			continue
		}
		matched = append(matched, g)
	}
	sortGames(matched)

	out := make([]models.GameWithTeams, 0, len(matched))
	for _, g := range matched {
		out = append(out, r.s.withTeams(g))
	}
	return out, nil
}

func (r *Games) ListGradable(_ context.Context) ([]models.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	pending := make(map[int]bool)
	for _, p := range r.s.picks {
		if !p.IsCorrect.Valid {
			pending[p.GameID] = true
		}
	}

	var matched []*models.Game
	for _, g := range r.s.games {
		if g.State().Locked() && pending[g.ID] {
			matched = append(matched, g)
		}
	}
	sortGames(matched)

	out := make([]models.Game, 0, len(matched))
	for _, g := range matched {
		out = append(out, *g)
	}
	return out, nil
}

// Picks mirrors repository.PickRepository
type Picks struct{ s *Store }

func (r *Picks) find(userID string, gameID int) *models.Pick {
	for _, p := range r.s.picks {
		if p.UserID == userID && p.GameID == gameID {
			return p
		}
	}
	return nil
}

func (r *Picks) Upsert(_ context.Context, pick *models.Pick) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	now := time.Now()
	if p := r.find(pick.UserID, pick.GameID); p != nil {
		if p.IsCorrect.Valid {
			return fmt.Errorf("pick for game %d: %w", pick.GameID, repository.ErrPickGraded)
		}
		p.PickedTeamID = pick.PickedTeamID
		p.UpdatedAt = now
		*pick = *p
		return nil
	}
	pick.ID = r.s.id()
	pick.CreatedAt, pick.UpdatedAt = now, now
	cp := *pick
	r.s.picks[cp.ID] = &cp
	return nil
}

func (r *Picks) Delete(_ context.Context, userID string, gameID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	p := r.find(userID, gameID)
	if p == nil || p.IsCorrect.Valid {
		return fmt.Errorf("pick for game %d: %w", gameID, repository.ErrNotFound)
	}
	delete(r.s.picks, p.ID)
	return nil
}

func (r *Picks) GetByUserAndGame(_ context.Context, userID string, gameID int) (*models.Pick, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if p := r.find(userID, gameID); p != nil {
		cp := *p
		return &cp, nil
	}
	return nil, fmt.Errorf("pick for game %d: %w", gameID, repository.ErrNotFound)
}

func (r *Picks) ListByUser(_ context.Context, userID string, seasonID int, week *int) ([]models.PickWithGame, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.PickWithGame
	for _, p := range r.s.picks {
		g, ok := r.s.games[p.GameID]
		if p.UserID != userID || !ok || g.SeasonID != seasonID {
			continue
		}
		if week != nil && g.Week != *week {
			continue
		}
		pw := models.PickWithGame{Pick: *p, Game: r.s.withTeams(g)}
		if t, ok := r.s.teams[p.PickedTeamID]; ok {
			pw.PickedTeam = *t
		}
		out = append(out, pw)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Game, out[j].Game
		if !a.GameTime.Equal(b.GameTime) {
			return a.GameTime.Before(b.GameTime)
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (r *Picks) GradeForGame(_ context.Context, gameID, winnerTeamID int) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.FailWith != nil {
		return 0, r.s.FailWith
	}
	var n int64
	now := time.Now()
	for _, p := range r.s.picks {
		if p.GameID != gameID || p.IsCorrect.Valid {
			continue
		}
		p.IsCorrect.Bool, p.IsCorrect.Valid = p.PickedTeamID == winnerTeamID, true
		p.GradedAt.Time, p.GradedAt.Valid = now, true
		p.UpdatedAt = now
		n++
	}
	return n, nil
}

func (r *Picks) RecordForUser(_ context.Context, userID string, seasonID int) (*models.PickRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var rec models.PickRecord
	for _, p := range r.s.picks {
		g, ok := r.s.games[p.GameID]
		if p.UserID != userID || !ok || g.SeasonID != seasonID {
			continue
		}
		rec.Total++
		switch {
		case !p.IsCorrect.Valid:
			rec.Pending++
		case p.IsCorrect.Bool:
			rec.Correct++
		default:
			rec.Incorrect++
		}
	}
	rec.ComputeWinRate()
	return &rec, nil
}
