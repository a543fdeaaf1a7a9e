//go:build integration

package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/Williamsdg/sportspredictions/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nullScore(v int32) sql.NullInt32 { return sql.NullInt32{Int32: v, Valid: true} }

func gameInput(fx fixture, externalID string, state models.GameState) *models.GameInput {
	return &models.GameInput{
		ExternalID: externalID,
		SportID:    fx.sport.ID,
		SeasonID:   fx.season.ID,
		HomeTeamID: fx.home.ID,
		AwayTeamID: fx.away.ID,
		GameTime:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Week:       models.BasketballWeek,
		State:      state,
	}
}

func TestGameRepository_UpsertByExternalID(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	fx := seedFixture(t, ctx, db)

	// Insert game
	res, err := db.Games.UpsertByExternalID(ctx, gameInput(fx, "X1", models.GameState{Status: models.StatusScheduled}))
	require.NoError(t, err, "Should insert game")
	assert.True(t, res.Created)

	// Live update
	res, err = db.Games.UpsertByExternalID(ctx, gameInput(fx, "X1", models.GameState{
		Status: models.StatusInProgress, HomeScore: nullScore(30), AwayScore: nullScore(14),
	}))
	require.NoError(t, err, "Should update game")
	assert.False(t, res.Created)
	assert.True(t, res.Updated)

	// Final
	final := models.GameState{Status: models.StatusFinal, HomeScore: nullScore(70), AwayScore: nullScore(21)}
	_, err = db.Games.UpsertByExternalID(ctx, gameInput(fx, "X1", final))
	require.NoError(t, err)

	stored, err := db.Games.GetByExternalID(ctx, "X1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinal, stored.Status)
	assert.Equal(t, int32(70), stored.HomeScore.Int32)
	assert.Equal(t, int32(21), stored.AwayScore.Int32)
	updatedAt := stored.UpdatedAt

	// Identical payload converges with no write
	res, err = db.Games.UpsertByExternalID(ctx, gameInput(fx, "X1", final))
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.False(t, res.Updated, "Unchanged payload should not rewrite the row")

	// Regressions and corrections after a locked final are ignored
	_, err = db.Games.UpsertByExternalID(ctx, gameInput(fx, "X1", models.GameState{
		Status: models.StatusInProgress, HomeScore: nullScore(3), AwayScore: nullScore(0),
	}))
	require.NoError(t, err)
	_, err = db.Games.UpsertByExternalID(ctx, gameInput(fx, "X1", models.GameState{
		Status: models.StatusFinal, HomeScore: nullScore(71), AwayScore: nullScore(21),
	}))
	require.NoError(t, err)

	stored, err = db.Games.GetByExternalID(ctx, "X1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinal, stored.Status, "FINAL never reverts")
	assert.Equal(t, int32(70), stored.HomeScore.Int32, "Final scores are frozen")
	assert.Equal(t, updatedAt, stored.UpdatedAt)

	count, err := db.Games.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "Upserts must not duplicate the game")
}

func TestGameRepository_IdentityIsImmutable(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	fx := seedFixture(t, ctx, db)

	_, err := db.Games.UpsertByExternalID(ctx, gameInput(fx, "X2", models.GameState{Status: models.StatusScheduled}))
	require.NoError(t, err)

	swapped := gameInput(fx, "X2", models.GameState{Status: models.StatusInProgress})
	swapped.HomeTeamID, swapped.AwayTeamID = fx.away.ID, fx.home.ID
	swapped.GameTime = swapped.GameTime.Add(48 * time.Hour)
	_, err = db.Games.UpsertByExternalID(ctx, swapped)
	require.NoError(t, err)

	stored, err := db.Games.GetByExternalID(ctx, "X2")
	require.NoError(t, err)
	assert.Equal(t, fx.home.ID, stored.HomeTeamID)
	assert.Equal(t, fx.away.ID, stored.AwayTeamID)
	assert.True(t, stored.GameTime.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, models.StatusInProgress, stored.Status)
}

func TestGameRepository_ListQueries(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	fx := seedFixture(t, ctx, db)

	_, err := db.Games.UpsertByExternalID(ctx, gameInput(fx, "S1", models.GameState{Status: models.StatusScheduled}))
	require.NoError(t, err)
	_, err = db.Games.UpsertByExternalID(ctx, gameInput(fx, "F1", models.GameState{
		Status: models.StatusFinal, HomeScore: nullScore(60), AwayScore: nullScore(50),
	}))
	require.NoError(t, err)

	all, err := db.Games.ListBySeason(ctx, fx.season.ID, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Texas @ Ohio State", all[0].Matchup())

	week := 2
	none, err := db.Games.ListBySeason(ctx, fx.season.ID, &week)
	require.NoError(t, err)
	assert.Empty(t, none)

	day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	pending, err := db.Games.ListNeedingUpdate(ctx, fx.sport.ID, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "S1", pending[0].ExternalID.String)

	gradable, err := db.Games.ListGradable(ctx)
	require.NoError(t, err)
	assert.Empty(t, gradable, "A final game without picks has nothing to grade")
}

func TestGameRepository_Create(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	fx := seedFixture(t, ctx, db)

	game := &models.Game{
		SportID:    fx.sport.ID,
		SeasonID:   fx.season.ID,
		HomeTeamID: fx.home.ID,
		AwayTeamID: fx.away.ID,
		GameTime:   time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
		Week:       models.BasketballWeek,
		Venue:      sql.NullString{String: "Value City Arena", Valid: true},
	}
	require.NoError(t, db.Games.Create(ctx, game))
	assert.NotZero(t, game.ID)
	assert.Equal(t, models.StatusScheduled, game.Status, "Status defaults to scheduled")

	got, err := db.Games.GetByID(ctx, game.ID)
	require.NoError(t, err)
	assert.False(t, got.ExternalID.Valid, "Created games have no external id")
	assert.Equal(t, "Value City Arena", got.Venue.String)
	assert.False(t, got.HomeScore.Valid)

	n, err := db.Games.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
