package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Williamsdg/sportspredictions/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// GameRepository handles game database operations
type GameRepository struct {
	db *Database
}

const gameColumns = `g.id, g.external_id, g.sport_id, g.season_id, g.home_team_id, g.away_team_id,
	g.game_time, g.week, g.venue, g.status, g.home_score, g.away_score, g.created_at, g.updated_at`

const gameWithTeamsColumns = gameColumns + `,
	h.id, h.sport_id, h.name, h.short_name, h.abbreviation, h.conference, h.primary_color, h.created_at, h.updated_at,
	a.id, a.sport_id, a.name, a.short_name, a.abbreviation, a.conference, a.primary_color, a.created_at, a.updated_at`

const gameWithTeamsFrom = `
	FROM games g
	JOIN teams h ON h.id = g.home_team_id
	JOIN teams a ON a.id = g.away_team_id`

func gameDest(game *models.Game) []any {
	return []any{
		&game.ID, &game.ExternalID, &game.SportID, &game.SeasonID, &game.HomeTeamID, &game.AwayTeamID,
		&game.GameTime, &game.Week, &game.Venue, &game.Status, &game.HomeScore, &game.AwayScore,
		&game.CreatedAt, &game.UpdatedAt,
	}
}

func teamDest(team *models.Team) []any {
	return []any{
		&team.ID, &team.SportID, &team.Name, &team.ShortName, &team.Abbreviation,
		&team.Conference, &team.PrimaryColor, &team.CreatedAt, &team.UpdatedAt,
	}
}

func gameWithTeamsDest(g *models.GameWithTeams) []any {
	dest := gameDest(&g.Game)
	dest = append(dest, teamDest(&g.HomeTeam)...)
	return append(dest, teamDest(&g.AwayTeam)...)
}

// UpsertByExternalID creates a game or applies a status/score observation to
// it. Identity fields are written only on insert. The update branch runs only
// when it would change something and only in the forward direction, matching
// models.MergeGameState: a final game with both scores is frozen, a lower
// status is ignored, and a null score never erases a stored one.
func (r *GameRepository) UpsertByExternalID(ctx context.Context, in *models.GameInput) (*models.UpsertResult, error) {
	query := `
		INSERT INTO games (
			external_id, sport_id, season_id, home_team_id, away_team_id,
			game_time, week, status, home_score, away_score
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (external_id) DO UPDATE SET
			status = EXCLUDED.status,
			home_score = COALESCE(EXCLUDED.home_score, games.home_score),
			away_score = COALESCE(EXCLUDED.away_score, games.away_score),
			updated_at = NOW()
		WHERE NOT (games.status = 'FINAL' AND games.home_score IS NOT NULL AND games.away_score IS NOT NULL)
			AND game_status_rank(games.status) <= game_status_rank(EXCLUDED.status)
			AND (games.status, games.home_score, games.away_score) IS DISTINCT FROM
				(EXCLUDED.status, COALESCE(EXCLUDED.home_score, games.home_score), COALESCE(EXCLUDED.away_score, games.away_score))
		RETURNING id, (xmax = 0) AS created
	`

	start := time.Now()
	var res models.UpsertResult
	err := r.db.Pool.QueryRow(
		ctx, query,
		in.ExternalID, in.SportID, in.SeasonID, in.HomeTeamID, in.AwayTeamID,
		in.GameTime, in.Week, string(in.State.Status), in.State.HomeScore, in.State.AwayScore,
	).Scan(&res.ID, &res.Created)

	// No row back means the conflict branch found nothing to change
	if errors.Is(err, pgx.ErrNoRows) {
		observe("upsert", "games", start, nil)
		return &res, nil
	}
	if err != nil {
		return nil, observe("upsert", "games", start, fmt.Errorf("failed to upsert game %s: %w", in.ExternalID, err))
	}
	res.Updated = !res.Created

	observe("upsert", "games", start, nil)
	log.Debug().
		Int("id", res.ID).
		Str("external_id", in.ExternalID).
		Str("status", string(in.State.Status)).
		Bool("created", res.Created).
		Msg("Game upserted")

	return &res, nil
}

// Create inserts a game that has no external source, such as a seeded fixture
func (r *GameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (
			external_id, sport_id, season_id, home_team_id, away_team_id,
			game_time, week, venue, status, home_score, away_score
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	if game.Status == "" {
		game.Status = models.StatusScheduled
	}

	err := r.db.Pool.QueryRow(
		ctx, query,
		game.ExternalID, game.SportID, game.SeasonID, game.HomeTeamID, game.AwayTeamID,
		game.GameTime, game.Week, game.Venue, string(game.Status), game.HomeScore, game.AwayScore,
	).Scan(&game.ID, &game.CreatedAt, &game.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	return nil
}

// GetByID retrieves a game by its database ID
func (r *GameRepository) GetByID(ctx context.Context, id int) (*models.Game, error) {
	var game models.Game
	err := r.db.Pool.QueryRow(ctx, `SELECT `+gameColumns+` FROM games g WHERE g.id = $1`, id).Scan(gameDest(&game)...)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("game %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return &game, nil
}

// GetByExternalID retrieves a game by its scoreboard identifier
func (r *GameRepository) GetByExternalID(ctx context.Context, externalID string) (*models.Game, error) {
	var game models.Game
	err := r.db.Pool.QueryRow(ctx, `SELECT `+gameColumns+` FROM games g WHERE g.external_id = $1`, externalID).Scan(gameDest(&game)...)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("game %s: %w", externalID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return &game, nil
}

// ListBySeason retrieves a season's games with teams, optionally for one week
func (r *GameRepository) ListBySeason(ctx context.Context, seasonID int, week *int) ([]models.GameWithTeams, error) {
	query := `SELECT ` + gameWithTeamsColumns + gameWithTeamsFrom + `
		WHERE g.season_id = $1 AND ($2::int IS NULL OR g.week = $2)
		ORDER BY g.game_time, g.id
	`
	return r.queryWithTeams(ctx, "list_season", query, seasonID, week)
}

// ListNeedingUpdate retrieves a sport's games starting in [from, to) that
// have not reached FINAL
func (r *GameRepository) ListNeedingUpdate(ctx context.Context, sportID int, from, to time.Time) ([]models.GameWithTeams, error) {
	query := `SELECT ` + gameWithTeamsColumns + gameWithTeamsFrom + `
		WHERE g.sport_id = $1
			AND g.status IN ('SCHEDULED', 'IN_PROGRESS')
			AND g.game_time >= $2 AND g.game_time < $3
		ORDER BY g.game_time, g.id
	`
	return r.queryWithTeams(ctx, "list_pending", query, sportID, from, to)
}

// ListGradable retrieves final games with both scores that still have
// ungraded picks
func (r *GameRepository) ListGradable(ctx context.Context) ([]models.Game, error) {
	query := `SELECT ` + gameColumns + `
		FROM games g
		WHERE g.status = 'FINAL'
			AND g.home_score IS NOT NULL
			AND g.away_score IS NOT NULL
			AND EXISTS (SELECT 1 FROM picks p WHERE p.game_id = g.id AND p.is_correct IS NULL)
		ORDER BY g.game_time, g.id
	`

	start := time.Now()
	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, observe("list_gradable", "games", start, fmt.Errorf("failed to list gradable games: %w", err))
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		var game models.Game
		if err := rows.Scan(gameDest(&game)...); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	observe("list_gradable", "games", start, nil)
	log.Debug().Int("count", len(games)).Msg("Retrieved gradable games")
	return games, nil
}

// Count returns the number of games
func (r *GameRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM games`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	return count, nil
}

func (r *GameRepository) queryWithTeams(ctx context.Context, op, query string, args ...any) ([]models.GameWithTeams, error) {
	start := time.Now()
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, observe(op, "games", start, fmt.Errorf("failed to query games: %w", err))
	}
	defer rows.Close()

	var games []models.GameWithTeams
	for rows.Next() {
		var g models.GameWithTeams
		if err := rows.Scan(gameWithTeamsDest(&g)...); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	observe(op, "games", start, nil)
	return games, nil
}
