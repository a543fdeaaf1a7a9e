//go:build integration

package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Williamsdg/sportspredictions/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests for database operations
// Run with: go test -v -tags=integration ./internal/repository/...

func setupTestDB(t *testing.T) (*Database, context.Context) {
	ctx := context.Background()

	cfg := Config{
		Host:     envOr("TEST_DATABASE_HOST", "localhost"),
		Port:     envOr("TEST_DATABASE_PORT", "5432"),
		Database: envOr("TEST_DATABASE_NAME", "sportspredictions_test"),
		User:     envOr("TEST_DATABASE_USER", "sportspredictions"),
		Password: envOr("TEST_DATABASE_PASSWORD", "sportspredictions"),
		SSLMode:  "disable",
	}

	db, err := NewDatabase(ctx, cfg)
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, db.Migrate(ctx), "Failed to migrate test database")

	_, err = db.Pool.Exec(ctx, `TRUNCATE picks, games, teams, seasons, sports RESTART IDENTITY CASCADE`)
	require.NoError(t, err, "Failed to reset test database")

	return db, ctx
}

func teardownTestDB(t *testing.T, db *Database) {
	db.Close()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type fixture struct {
	sport  *models.Sport
	season *models.Season
	home   *models.Team
	away   *models.Team
}

// seedFixture creates a basketball sport, an active season and two teams
func seedFixture(t *testing.T, ctx context.Context, db *Database) fixture {
	t.Helper()

	sport := &models.Sport{Slug: models.SportBasketball, Name: "Basketball"}
	require.NoError(t, db.Sports.Upsert(ctx, sport))

	season := &models.Season{
		SportID:   sport.ID,
		Name:      "2024-25",
		Year:      2024,
		StartDate: time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	}
	require.NoError(t, db.Seasons.Upsert(ctx, season))

	home := &models.Team{SportID: sport.ID, Name: "Ohio State Buckeyes", ShortName: "Ohio State", Abbreviation: "OSU"}
	away := &models.Team{SportID: sport.ID, Name: "Texas Longhorns", ShortName: "Texas", Abbreviation: "TEX"}
	require.NoError(t, db.Teams.Upsert(ctx, home))
	require.NoError(t, db.Teams.Upsert(ctx, away))

	return fixture{sport: sport, season: season, home: home, away: away}
}

func TestDatabaseConnection(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	// Test health check
	err := db.Health(ctx)
	assert.NoError(t, err, "Database health check should pass")

	// Test stats
	stats := db.PoolStats()
	assert.NotNil(t, stats, "Should return connection pool stats")
	assert.GreaterOrEqual(t, stats["max_conns"].(int32), int32(1), "Should have at least 1 max connection")
}

func TestMigrate_IsRepeatable(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	assert.NoError(t, db.Migrate(ctx), "Second migration run should be a no-op")
}

func TestSeasonRepository_GetActive(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	fx := seedFixture(t, ctx, db)

	active, err := db.Seasons.GetActive(ctx, fx.sport.ID)
	require.NoError(t, err)
	assert.Equal(t, fx.season.ID, active.ID)

	next := &models.Season{
		SportID:   fx.sport.ID,
		Name:      "2025-26",
		Year:      2025,
		StartDate: time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	}
	require.NoError(t, db.Seasons.Upsert(ctx, next), "Activating a new season should retire the old one")

	active, err = db.Seasons.GetActive(ctx, fx.sport.ID)
	require.NoError(t, err)
	assert.Equal(t, 2025, active.Year)

	_, err = db.Seasons.GetActive(ctx, fx.sport.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSportRepository_GetBySlug(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	fx := seedFixture(t, ctx, db)

	sport, err := db.Sports.GetBySlug(ctx, models.SportBasketball)
	require.NoError(t, err)
	assert.Equal(t, fx.sport.ID, sport.ID)

	_, err = db.Sports.GetBySlug(ctx, models.SportFootball)
	assert.ErrorIs(t, err, ErrNotFound)
}
