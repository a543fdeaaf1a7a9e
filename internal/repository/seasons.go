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

// SeasonRepository handles season database operations
type SeasonRepository struct {
	db *Database
}

// GetActive retrieves the active season of a sport
func (r *SeasonRepository) GetActive(ctx context.Context, sportID int) (*models.Season, error) {
	query := `
		SELECT id, sport_id, name, year, start_date, end_date, is_active
		FROM seasons
		WHERE sport_id = $1 AND is_active
		ORDER BY year DESC
		LIMIT 1
	`

	start := time.Now()
	var s models.Season
	err := r.db.Pool.QueryRow(ctx, query, sportID).Scan(
		&s.ID, &s.SportID, &s.Name, &s.Year, &s.StartDate, &s.EndDate, &s.IsActive,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, observe("select", "seasons", start, fmt.Errorf("active season for sport %d: %w", sportID, ErrNotFound))
	}
	if err != nil {
		return nil, observe("select", "seasons", start, fmt.Errorf("failed to get active season: %w", err))
	}

	observe("select", "seasons", start, nil)
	return &s, nil
}

// Upsert inserts or updates a season by (sport, year). Activating a season
// deactivates the sport's other seasons in the same transaction.
func (r *SeasonRepository) Upsert(ctx context.Context, season *models.Season) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if season.IsActive {
		if _, err := tx.Exec(ctx,
			`UPDATE seasons SET is_active = FALSE WHERE sport_id = $1 AND year <> $2 AND is_active`,
			season.SportID, season.Year,
		); err != nil {
			return fmt.Errorf("failed to deactivate seasons: %w", err)
		}
	}

	query := `
		INSERT INTO seasons (sport_id, name, year, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (sport_id, year) DO UPDATE SET
			name = EXCLUDED.name,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			is_active = EXCLUDED.is_active
		RETURNING id
	`
	err = tx.QueryRow(ctx, query,
		season.SportID, season.Name, season.Year, season.StartDate, season.EndDate, season.IsActive,
	).Scan(&season.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert season: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit season: %w", err)
	}

	log.Debug().
		Int("id", season.ID).
		Int("sport_id", season.SportID).
		Int("year", season.Year).
		Bool("active", season.IsActive).
		Msg("Season upserted")

	return nil
}
