package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Williamsdg/sportspredictions/internal/auth"
	"github.com/Williamsdg/sportspredictions/internal/grading"
	"github.com/Williamsdg/sportspredictions/internal/models"
	"github.com/Williamsdg/sportspredictions/internal/picks"
	"github.com/Williamsdg/sportspredictions/internal/resolver"
	"github.com/Williamsdg/sportspredictions/internal/scoresync"
	"github.com/Williamsdg/sportspredictions/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	day1   = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tipoff = time.Date(2025, 1, 1, 19, 0, 0, 0, time.UTC)
)

type testServer struct {
	store   *testutil.Store
	fetcher *testutil.Fetcher
	auth    *auth.Authenticator
	router  http.Handler
	now     time.Time
	season  *models.Season
	home    *models.Team
	away    *models.Team
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := testutil.NewStore()
	sport := store.AddSport(models.SportBasketball)
	season := store.AddSeason(sport, 2024)
	home := store.AddTeam(sport, "OSU", "Ohio State", "Big Ten")
	away := store.AddTeam(sport, "TEX", "Texas", "SEC")

	fetcher := testutil.NewFetcher()
	engine := scoresync.NewEngine(fetcher, store.Teams, store.Games,
		resolver.New(map[string]string{"ohio-st": "OSU", "texas": "TEX"}))
	grader := grading.NewGrader(store.Games, store.Picks)
	syncSvc := scoresync.NewService(engine, store.Sports, store.Seasons, grader, time.UTC)

	ts := &testServer{
		store:   store,
		fetcher: fetcher,
		auth:    auth.New("test-secret"),
		now:     day1.Add(12 * time.Hour),
		season:  season,
		home:    home,
		away:    away,
	}
	ts.router = NewRouter(Deps{
		Sync:       syncSvc,
		Grader:     grader,
		Picks:      picks.NewService(store.Games, store.Picks, syncSvc),
		Games:      store.Games,
		Auth:       ts.auth,
		CronSecret: "cron-secret",
		Now:        func() time.Time { return ts.now },
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) userToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := ts.auth.Issue(userID, time.Hour)
	require.NoError(t, err)
	return token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (ts *testServer) serveFinal() {
	ts.fetcher.SetScoreboard(models.SportBasketball, models.BasketballDay(day1),
		testutil.Record("X1", tipoff, "final", "ohio-st", "70", "texas", "21"),
	)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestHealth_Unhealthy(t *testing.T) {
	router := NewRouter(Deps{
		Auth:   auth.New("x"),
		Health: func(context.Context) error { return errors.New("db down") },
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSync_Basketball(t *testing.T) {
	ts := newTestServer(t)
	ts.serveFinal()

	rec := ts.do(t, http.MethodPost, "/api/sync", map[string]any{"sport": "basketball", "year": 2025, "month": 1, "day": 1}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "synced", body["outcome"])
	assert.EqualValues(t, 1, body["synced"])
	assert.EqualValues(t, 1, body["created"])
	assert.NotNil(t, ts.store.GameByExternalID("X1"))
}

func TestSync_DefaultsToToday(t *testing.T) {
	ts := newTestServer(t)
	ts.serveFinal()

	rec := ts.do(t, http.MethodPost, "/api/sync", map[string]any{"sport": "basketball"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"basketball/2025-01-01"}, ts.fetcher.Calls())
}

func TestSync_UpstreamFailureIs502(t *testing.T) {
	ts := newTestServer(t)
	ts.fetcher.Fail(models.SportBasketball, models.BasketballDay(day1))

	rec := ts.do(t, http.MethodPost, "/api/sync", map[string]any{"sport": "basketball"}, "")
	require.Equal(t, http.StatusBadGateway, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "upstream_failure", body["outcome"])
	assert.Equal(t, "Failed to fetch NCAA data", body["error"])
	assert.EqualValues(t, 0, body["synced"])
	assert.EqualValues(t, 0, body["skipped"])
}

func TestSync_NoGamesIsSuccess(t *testing.T) {
	ts := newTestServer(t)
	ts.fetcher.SetScoreboard(models.SportBasketball, models.BasketballDay(day1))

	rec := ts.do(t, http.MethodPost, "/api/sync", map[string]any{"sport": "basketball"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no_games", decode(t, rec)["outcome"])
}

func TestSync_BadRequests(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"empty body", nil, http.StatusBadRequest},
		{"unknown sport", map[string]any{"sport": "hockey"}, http.StatusBadRequest},
		{"bad month", map[string]any{"sport": "basketball", "month": 13, "day": 1}, http.StatusBadRequest},
		{"bad day", map[string]any{"sport": "basketball", "month": 2, "day": 30}, http.StatusBadRequest},
		{"not an object", "basketball", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/api/sync", tt.body, "")
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.Contains(t, decode(t, rec), "error")
		})
	}
	assert.Empty(t, ts.fetcher.Calls())
}

func TestSync_FootballNotSeeded(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/sync", map[string]any{"sport": "football", "year": 2024, "week": 3}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Sport not found"}`, rec.Body.String())
}

func TestSync_MonthBackfill(t *testing.T) {
	ts := newTestServer(t)
	ts.fetcher.SetSchedule(2025, time.January, models.ScheduleDate{Date: "2025-01-01", Games: 2})
	ts.serveFinal()

	rec := ts.do(t, http.MethodPost, "/api/sync", map[string]any{"sport": "basketball", "year": 2025, "month": 1}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.EqualValues(t, 1, body["synced"])
	assert.Len(t, body["units"], 1)
}

func TestSync_MonthBackfillPartialFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.fetcher.SetSchedule(2025, time.January,
		models.ScheduleDate{Date: "2025-01-01", Games: 1},
		models.ScheduleDate{Date: "2025-01-02", Games: 1},
	)
	ts.serveFinal()
	ts.fetcher.SetScoreboard(models.SportBasketball, models.BasketballDay(day1.AddDate(0, 0, 1)),
		testutil.Record("X9", tipoff.AddDate(0, 0, 1), "live", "ohio-st", "12", "texas", "10"),
	)
	ts.store.FailUpsert = map[string]error{"X9": errors.New("connection reset")}

	rec := ts.do(t, http.MethodPost, "/api/sync", map[string]any{"sport": "basketball", "year": 2025, "month": 1}, "")
	require.Equal(t, http.StatusInternalServerError, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Sync failed", body["error"])
	assert.EqualValues(t, 1, body["synced"], "the day stored before the failure is reported")
	assert.Len(t, body["units"], 1)
	assert.NotNil(t, ts.store.GameByExternalID("X1"))
}

func TestSyncStatus(t *testing.T) {
	ts := newTestServer(t)
	ts.fetcher.SetScoreboard(models.SportBasketball, models.BasketballDay(day1),
		testutil.Record("X2", tipoff, "live", "ohio-st", "30", "texas", "28"),
	)
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/api/sync", map[string]any{"sport": "basketball"}, "").Code)

	rec := ts.do(t, http.MethodGet, "/api/sync?sport=basketball", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 1, body["gamesNeedingUpdate"])

	rec = ts.do(t, http.MethodGet, "/api/sync", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Sport required"}`, rec.Body.String())
}

func TestCronEndpointsRequireSecret(t *testing.T) {
	ts := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, ts.do(t, http.MethodPost, "/api/grade", nil, "").Code)
	assert.Equal(t, http.StatusUnauthorized, ts.do(t, http.MethodGet, "/api/cron/sync", nil, "wrong").Code)
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/api/grade", nil, "cron-secret").Code)
}

func TestCronSync_SyncsThenGrades(t *testing.T) {
	ts := newTestServer(t)
	ts.serveFinal()

	// Game exists before tipoff with a pending pick on the home team
	game := ts.store.AddGame(&models.Game{
		ExternalID: sql.NullString{String: "X1", Valid: true},
		SportID:    ts.season.SportID,
		SeasonID:   ts.season.ID,
		HomeTeamID: ts.home.ID,
		AwayTeamID: ts.away.ID,
		GameTime:   tipoff,
		Week:       models.BasketballWeek,
	})
	ts.store.AddPick(&models.Pick{UserID: "u1", GameID: game.ID, PickedTeamID: ts.home.ID})

	ts.now = day1.Add(30 * time.Hour)
	rec := ts.do(t, http.MethodGet, "/api/cron/sync", nil, "cron-secret")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 1, body["picksUpdated"])
	assert.Contains(t, body["results"], models.SportBasketball)
}

func TestCronSync_PartialFailureStillGrades(t *testing.T) {
	ts := newTestServer(t)
	ts.serveFinal()
	ts.fetcher.SetScoreboard(models.SportBasketball, models.BasketballDay(day1.AddDate(0, 0, 1)),
		testutil.Record("X9", tipoff.AddDate(0, 0, 1), "pre", "ohio-st", "0", "texas", "0"),
	)
	ts.store.FailUpsert = map[string]error{"X9": errors.New("connection reset")}

	game := ts.store.AddGame(&models.Game{
		ExternalID: sql.NullString{String: "X1", Valid: true},
		SportID:    ts.season.SportID,
		SeasonID:   ts.season.ID,
		HomeTeamID: ts.home.ID,
		AwayTeamID: ts.away.ID,
		GameTime:   tipoff,
		Week:       models.BasketballWeek,
	})
	pick := ts.store.AddPick(&models.Pick{UserID: "u1", GameID: game.ID, PickedTeamID: ts.home.ID})

	ts.now = day1.Add(30 * time.Hour)
	rec := ts.do(t, http.MethodGet, "/api/cron/sync", nil, "cron-secret")
	require.Equal(t, http.StatusInternalServerError, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Sync failed", body["error"])
	assert.EqualValues(t, 1, body["picksUpdated"])
	require.Contains(t, body["results"], models.SportBasketball)
	batch := body["results"].(map[string]any)[models.SportBasketball].(map[string]any)
	assert.EqualValues(t, 1, batch["synced"])
	assert.Len(t, batch["units"], 1)

	assert.True(t, ts.store.Pick(pick.ID).IsCorrect.Bool)
}

func TestGrade(t *testing.T) {
	ts := newTestServer(t)
	ts.serveFinal()
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/api/sync", map[string]any{"sport": "basketball"}, "").Code)

	game := ts.store.GameByExternalID("X1")
	require.NotNil(t, game)
	ts.store.AddPick(&models.Pick{UserID: "u1", GameID: game.ID, PickedTeamID: ts.away.ID})

	rec := ts.do(t, http.MethodPost, "/api/grade", nil, "cron-secret")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"picksUpdated":1,"gamesGraded":1,"tiesSkipped":0}`, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/api/grade", nil, "cron-secret")
	assert.JSONEq(t, `{"success":true,"picksUpdated":0,"gamesGraded":0,"tiesSkipped":0}`, rec.Body.String())
}

func TestGames(t *testing.T) {
	ts := newTestServer(t)
	ts.serveFinal()
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/api/sync", map[string]any{"sport": "basketball"}, "").Code)

	rec := ts.do(t, http.MethodGet, "/api/games?sport=basketball", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Len(t, body["games"], 1)
	game := body["games"].([]any)[0].(map[string]any)
	assert.Equal(t, "FINAL", game["status"])
	assert.EqualValues(t, 70, game["homeScore"])
	assert.Equal(t, "Ohio State", game["homeTeam"].(map[string]any)["shortName"])
	assert.EqualValues(t, 2024, body["season"].(map[string]any)["year"])

	rec = ts.do(t, http.MethodGet, "/api/games?sport=basketball&conference=ACC", nil, "")
	assert.Empty(t, decode(t, rec)["games"])

	rec = ts.do(t, http.MethodGet, "/api/games?sport=basketball&conference=SEC", nil, "")
	assert.Len(t, decode(t, rec)["games"], 1)

	rec = ts.do(t, http.MethodGet, "/api/games?sport=basketball&week=x", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/games", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code, "football is not seeded")
}

func TestPicks_RequireAuth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/picks?sport=basketball", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/picks?sport=basketball", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPicks_Lifecycle(t *testing.T) {
	ts := newTestServer(t)
	token := ts.userToken(t, "u1")
	game := ts.store.AddGame(&models.Game{
		SportID:    ts.season.SportID,
		SeasonID:   ts.season.ID,
		HomeTeamID: ts.home.ID,
		AwayTeamID: ts.away.ID,
		GameTime:   tipoff,
		Week:       models.BasketballWeek,
	})

	rec := ts.do(t, http.MethodPost, "/api/picks", map[string]any{"gameId": game.ID, "pickedTeamId": ts.home.ID}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	pick := decode(t, rec)["pick"].(map[string]any)
	assert.Equal(t, "u1", pick["userId"])
	assert.Nil(t, pick["isCorrect"])

	rec = ts.do(t, http.MethodGet, "/api/picks?sport=basketball", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode(t, rec)["picks"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "Ohio State", list[0].(map[string]any)["pickedTeam"].(map[string]any)["shortName"])

	rec = ts.do(t, http.MethodGet, "/api/picks/record?sport=basketball", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["pending"])

	rec = ts.do(t, http.MethodDelete, "/api/picks", map[string]any{"gameId": game.ID}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = ts.do(t, http.MethodDelete, "/api/picks", map[string]any{"gameId": game.ID}, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Pick not found"}`, rec.Body.String())
}

func TestPicks_Rejections(t *testing.T) {
	ts := newTestServer(t)
	token := ts.userToken(t, "u1")
	game := ts.store.AddGame(&models.Game{
		SportID:    ts.season.SportID,
		SeasonID:   ts.season.ID,
		HomeTeamID: ts.home.ID,
		AwayTeamID: ts.away.ID,
		GameTime:   tipoff,
		Week:       models.BasketballWeek,
	})

	tests := []struct {
		name    string
		body    map[string]any
		now     time.Time
		status  int
		message string
	}{
		{"missing fields", map[string]any{"gameId": game.ID}, ts.now, http.StatusBadRequest, "Game ID and picked team ID are required"},
		{"unknown game", map[string]any{"gameId": 999, "pickedTeamId": ts.home.ID}, ts.now, http.StatusNotFound, "Game not found"},
		{"after tipoff", map[string]any{"gameId": game.ID, "pickedTeamId": ts.home.ID}, tipoff, http.StatusBadRequest, "Cannot pick after game has started"},
		{"wrong team", map[string]any{"gameId": game.ID, "pickedTeamId": 999}, ts.now, http.StatusBadRequest, "Invalid team selection"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.now = tt.now
			rec := ts.do(t, http.MethodPost, "/api/picks", tt.body, token)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, decode(t, rec)["error"])
		})
	}
}
