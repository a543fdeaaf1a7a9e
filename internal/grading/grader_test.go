package grading

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/Williamsdg/sportspredictions/internal/models"
	"github.com/Williamsdg/sportspredictions/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store  *testutil.Store
	season *models.Season
	home   *models.Team
	away   *models.Team
}

func newFixture() fixture {
	store := testutil.NewStore()
	sport := store.AddSport(models.SportBasketball)
	return fixture{
		store:  store,
		season: store.AddSeason(sport, 2024),
		home:   store.AddTeam(sport, "OSU", "Ohio State", "Big Ten"),
		away:   store.AddTeam(sport, "TEX", "Texas", "SEC"),
	}
}

func (f fixture) game(status models.GameStatus, home, away *int32) *models.Game {
	g := &models.Game{
		SportID:    f.season.SportID,
		SeasonID:   f.season.ID,
		HomeTeamID: f.home.ID,
		AwayTeamID: f.away.ID,
		GameTime:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Week:       models.BasketballWeek,
		Status:     status,
	}
	if home != nil {
		g.HomeScore = sql.NullInt32{Int32: *home, Valid: true}
	}
	if away != nil {
		g.AwayScore = sql.NullInt32{Int32: *away, Valid: true}
	}
	return f.store.AddGame(g)
}

func (f fixture) pick(user string, gameID, teamID int) *models.Pick {
	return f.store.AddPick(&models.Pick{UserID: user, GameID: gameID, PickedTeamID: teamID})
}

func score(v int32) *int32 { return &v }

func TestGrader_GradesAwayPickOnHomeWin(t *testing.T) {
	f := newFixture()
	game := f.game(models.StatusFinal, score(70), score(21))
	awayPick := f.pick("u1", game.ID, f.away.ID)
	homePick := f.pick("u2", game.ID, f.home.ID)

	g := NewGrader(f.store.Games, f.store.Picks)
	sum, err := g.GradeCompletedPicks(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Summary{GamesGraded: 1, PicksUpdated: 2}, sum)

	got := f.store.Pick(awayPick.ID)
	require.True(t, got.IsCorrect.Valid, "away pick should be graded")
	assert.False(t, got.IsCorrect.Bool, "home team scored higher")
	assert.True(t, got.GradedAt.Valid)

	got = f.store.Pick(homePick.ID)
	require.True(t, got.IsCorrect.Valid)
	assert.True(t, got.IsCorrect.Bool)
}

func TestGrader_GradeOnce(t *testing.T) {
	f := newFixture()
	game := f.game(models.StatusFinal, score(60), score(75))

	// Already graded with a value the current score would contradict
	graded := f.store.AddPick(&models.Pick{
		UserID:       "u1",
		GameID:       game.ID,
		PickedTeamID: f.home.ID,
		IsCorrect:    sql.NullBool{Bool: true, Valid: true},
	})
	fresh := f.pick("u2", game.ID, f.away.ID)

	g := NewGrader(f.store.Games, f.store.Picks)

	sum, err := g.GradeCompletedPicks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.PicksUpdated, "only the ungraded pick is touched")

	sum, err = g.GradeCompletedPicks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{}, sum, "second pass is a no-op")

	assert.True(t, f.store.Pick(graded.ID).IsCorrect.Bool, "graded pick is never recomputed")
	assert.True(t, f.store.Pick(fresh.ID).IsCorrect.Bool)
}

func TestGrader_TieLeavesPicksUngraded(t *testing.T) {
	f := newFixture()
	game := f.game(models.StatusFinal, score(77), score(77))
	p := f.pick("u1", game.ID, f.home.ID)

	g := NewGrader(f.store.Games, f.store.Picks)

	for i := 0; i < 2; i++ {
		sum, err := g.GradeCompletedPicks(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Summary{TiesSkipped: 1}, sum, "tie is reported on every pass")
	}

	assert.False(t, f.store.Pick(p.ID).IsCorrect.Valid)
}

func TestGrader_IgnoresUnfinishedGames(t *testing.T) {
	f := newFixture()
	live := f.game(models.StatusInProgress, score(30), score(10))
	partial := f.game(models.StatusFinal, score(30), nil)
	f.pick("u1", live.ID, f.home.ID)
	f.pick("u1", partial.ID, f.home.ID)

	g := NewGrader(f.store.Games, f.store.Picks)
	sum, err := g.GradeCompletedPicks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{}, sum)
}

type failingPicks struct{}

func (failingPicks) GradeForGame(context.Context, int, int) (int64, error) {
	return 0, errors.New("connection reset")
}

func TestGrader_StorageErrorIsReturned(t *testing.T) {
	f := newFixture()
	game := f.game(models.StatusFinal, score(1), score(0))
	f.pick("u1", game.ID, f.home.ID)

	g := NewGrader(f.store.Games, failingPicks{})
	_, err := g.GradeCompletedPicks(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to grade game")
}
