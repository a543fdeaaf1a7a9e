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

// PickRepository handles pick database operations
type PickRepository struct {
	db *Database
}

const pickColumns = `p.id, p.user_id, p.game_id, p.picked_team_id, p.is_correct, p.graded_at, p.created_at, p.updated_at`

func pickDest(p *models.Pick) []any {
	return []any{
		&p.ID, &p.UserID, &p.GameID, &p.PickedTeamID, &p.IsCorrect, &p.GradedAt, &p.CreatedAt, &p.UpdatedAt,
	}
}

// Upsert creates or changes a user's pick for a game. A graded pick is never
// rewritten; that case returns ErrPickGraded.
func (r *PickRepository) Upsert(ctx context.Context, pick *models.Pick) error {
	query := `
		INSERT INTO picks (user_id, game_id, picked_team_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, game_id) DO UPDATE SET
			picked_team_id = EXCLUDED.picked_team_id,
			updated_at = NOW()
		WHERE picks.is_correct IS NULL
		RETURNING id, is_correct, graded_at, created_at, updated_at
	`

	start := time.Now()
	err := r.db.Pool.QueryRow(ctx, query, pick.UserID, pick.GameID, pick.PickedTeamID).Scan(
		&pick.ID, &pick.IsCorrect, &pick.GradedAt, &pick.CreatedAt, &pick.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return observe("upsert", "picks", start, fmt.Errorf("pick for game %d: %w", pick.GameID, ErrPickGraded))
	}
	if err != nil {
		return observe("upsert", "picks", start, fmt.Errorf("failed to upsert pick: %w", err))
	}

	observe("upsert", "picks", start, nil)
	log.Debug().
		Int("id", pick.ID).
		Str("user_id", pick.UserID).
		Int("game_id", pick.GameID).
		Int("picked_team_id", pick.PickedTeamID).
		Msg("Pick upserted")

	return nil
}

// Delete removes a user's ungraded pick on a game
func (r *PickRepository) Delete(ctx context.Context, userID string, gameID int) error {
	start := time.Now()
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM picks WHERE user_id = $1 AND game_id = $2 AND is_correct IS NULL`, userID, gameID)
	if err != nil {
		return observe("delete", "picks", start, fmt.Errorf("failed to delete pick: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return observe("delete", "picks", start, fmt.Errorf("pick for game %d: %w", gameID, ErrNotFound))
	}
	return observe("delete", "picks", start, nil)
}

// GetByUserAndGame retrieves a user's pick on a game
func (r *PickRepository) GetByUserAndGame(ctx context.Context, userID string, gameID int) (*models.Pick, error) {
	var pick models.Pick
	err := r.db.Pool.QueryRow(ctx,
		`SELECT `+pickColumns+` FROM picks p WHERE p.user_id = $1 AND p.game_id = $2`, userID, gameID,
	).Scan(pickDest(&pick)...)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("pick for game %d: %w", gameID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pick: %w", err)
	}

	return &pick, nil
}

// ListByUser retrieves a user's picks in a season, optionally for one week,
// with the game, both teams and the picked team
func (r *PickRepository) ListByUser(ctx context.Context, userID string, seasonID int, week *int) ([]models.PickWithGame, error) {
	query := `SELECT ` + pickColumns + `, ` + gameWithTeamsColumns + `,
			t.id, t.sport_id, t.name, t.short_name, t.abbreviation, t.conference, t.primary_color, t.created_at, t.updated_at
		FROM picks p
		JOIN games g ON g.id = p.game_id
		JOIN teams h ON h.id = g.home_team_id
		JOIN teams a ON a.id = g.away_team_id
		JOIN teams t ON t.id = p.picked_team_id
		WHERE p.user_id = $1 AND g.season_id = $2 AND ($3::int IS NULL OR g.week = $3)
		ORDER BY g.game_time, g.id
	`

	start := time.Now()
	rows, err := r.db.Pool.Query(ctx, query, userID, seasonID, week)
	if err != nil {
		return nil, observe("list_user", "picks", start, fmt.Errorf("failed to list picks: %w", err))
	}
	defer rows.Close()

	var picks []models.PickWithGame
	for rows.Next() {
		var p models.PickWithGame
		dest := pickDest(&p.Pick)
		dest = append(dest, gameWithTeamsDest(&p.Game)...)
		dest = append(dest, teamDest(&p.PickedTeam)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan pick: %w", err)
		}
		picks = append(picks, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating picks: %w", err)
	}

	observe("list_user", "picks", start, nil)
	return picks, nil
}

// GradeForGame marks every ungraded pick on a game correct or incorrect
// against winnerTeamID. Picks already graded are not touched, so repeated
// passes are no-ops.
func (r *PickRepository) GradeForGame(ctx context.Context, gameID, winnerTeamID int) (int64, error) {
	query := `
		UPDATE picks
		SET is_correct = (picked_team_id = $2),
			graded_at = NOW(),
			updated_at = NOW()
		WHERE game_id = $1 AND is_correct IS NULL
	`

	start := time.Now()
	tag, err := r.db.Pool.Exec(ctx, query, gameID, winnerTeamID)
	if err != nil {
		return 0, observe("grade", "picks", start, fmt.Errorf("failed to grade picks for game %d: %w", gameID, err))
	}

	observe("grade", "picks", start, nil)
	return tag.RowsAffected(), nil
}

// RecordForUser summarizes a user's picks within a season
func (r *PickRepository) RecordForUser(ctx context.Context, userID string, seasonID int) (*models.PickRecord, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE p.is_correct),
			COUNT(*) FILTER (WHERE NOT p.is_correct),
			COUNT(*) FILTER (WHERE p.is_correct IS NULL)
		FROM picks p
		JOIN games g ON g.id = p.game_id
		WHERE p.user_id = $1 AND g.season_id = $2
	`

	var rec models.PickRecord
	if err := r.db.Pool.QueryRow(ctx, query, userID, seasonID).Scan(
		&rec.Total, &rec.Correct, &rec.Incorrect, &rec.Pending,
	); err != nil {
		return nil, fmt.Errorf("failed to summarize picks: %w", err)
	}
	rec.ComputeWinRate()

	return &rec, nil
}
