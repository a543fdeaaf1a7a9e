package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Williamsdg/sportspredictions/internal/models"

	"github.com/jackc/pgx/v5"
)

// SportRepository handles sport database operations
type SportRepository struct {
	db *Database
}

// GetBySlug retrieves a sport by slug
func (r *SportRepository) GetBySlug(ctx context.Context, slug string) (*models.Sport, error) {
	start := time.Now()
	var sport models.Sport
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, slug, name FROM sports WHERE slug = $1`, slug,
	).Scan(&sport.ID, &sport.Slug, &sport.Name)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, observe("select", "sports", start, fmt.Errorf("sport %q: %w", slug, ErrNotFound))
	}
	if err != nil {
		return nil, observe("select", "sports", start, fmt.Errorf("failed to get sport: %w", err))
	}

	observe("select", "sports", start, nil)
	return &sport, nil
}

// Upsert inserts a sport or refreshes its display name
func (r *SportRepository) Upsert(ctx context.Context, sport *models.Sport) error {
	query := `
		INSERT INTO sports (slug, name) VALUES ($1, $2)
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`
	if err := r.db.Pool.QueryRow(ctx, query, sport.Slug, sport.Name).Scan(&sport.ID); err != nil {
		return fmt.Errorf("failed to upsert sport: %w", err)
	}
	return nil
}
