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

// TeamRepository handles team database operations
type TeamRepository struct {
	db *Database
}

const teamColumns = `id, sport_id, name, short_name, abbreviation, conference, primary_color, created_at, updated_at`

func scanTeam(row pgx.Row, team *models.Team) error {
	return row.Scan(
		&team.ID, &team.SportID, &team.Name, &team.ShortName, &team.Abbreviation,
		&team.Conference, &team.PrimaryColor, &team.CreatedAt, &team.UpdatedAt,
	)
}

// Upsert inserts or updates a team keyed by (abbreviation, sport)
func (r *TeamRepository) Upsert(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (sport_id, name, short_name, abbreviation, conference, primary_color)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (abbreviation, sport_id) DO UPDATE SET
			name = EXCLUDED.name,
			short_name = EXCLUDED.short_name,
			conference = EXCLUDED.conference,
			primary_color = EXCLUDED.primary_color,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(
		ctx, query,
		team.SportID, team.Name, team.ShortName, team.Abbreviation, team.Conference, team.PrimaryColor,
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert team: %w", err)
	}

	log.Debug().
		Int("id", team.ID).
		Int("sport_id", team.SportID).
		Str("abbreviation", team.Abbreviation).
		Msg("Team upserted")

	return nil
}

// GetByID retrieves a team by its database ID
func (r *TeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	var team models.Team
	err := scanTeam(r.db.Pool.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1`, id), &team)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("team %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return &team, nil
}

// ListBySport retrieves every team of a sport
func (r *TeamRepository) ListBySport(ctx context.Context, sportID int) ([]models.Team, error) {
	start := time.Now()
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE sport_id = $1 ORDER BY abbreviation`, sportID)
	if err != nil {
		return nil, observe("select", "teams", start, fmt.Errorf("failed to list teams: %w", err))
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var team models.Team
		if err := scanTeam(rows, &team); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teams: %w", err)
	}

	observe("select", "teams", start, nil)
	return teams, nil
}

// Count returns the number of teams of a sport
func (r *TeamRepository) Count(ctx context.Context, sportID int) (int, error) {
	var count int
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM teams WHERE sport_id = $1`, sportID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count teams: %w", err)
	}
	return count, nil
}
