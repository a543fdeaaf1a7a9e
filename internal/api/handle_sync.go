package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Williamsdg/sportspredictions/internal/models"
	"github.com/Williamsdg/sportspredictions/internal/scoresync"
)

type syncRequest struct {
	Sport string `json:"sport"`
	Year  *int   `json:"year"`
	Week  *int   `json:"week"`
	Month *int   `json:"month"`
	Day   *int   `json:"day"`
}

type syncResponse struct {
	Success bool              `json:"success"`
	Outcome scoresync.Outcome `json:"outcome"`
	Synced  int               `json:"synced"`
	Skipped int               `json:"skipped"`
	Total   int               `json:"total"`
	Created int               `json:"created"`
	Unit    string            `json:"unit"`
	Error   string            `json:"error,omitempty"`
}

type batchResponse struct {
	Success bool                `json:"success"`
	Synced  int                 `json:"synced"`
	Skipped int                 `json:"skipped"`
	Units   []*scoresync.Result `json:"units"`
	Error   string              `json:"error,omitempty"`
}

func intOr(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}

// unitFor builds the sync unit for a request. Missing fields default to the
// current day, or to week 1 of the current year for football.
func unitFor(sport string, req syncRequest, now time.Time) (models.SyncUnit, error) {
	if sport == models.SportFootball {
		return models.FootballWeek(intOr(req.Year, now.Year()), intOr(req.Week, 1)), nil
	}

	y, m, d := now.Date()
	month := intOr(req.Month, int(m))
	if month < 1 || month > 12 {
		return models.SyncUnit{}, errors.New("month must be between 1 and 12")
	}
	day := time.Date(intOr(req.Year, y), time.Month(month), intOr(req.Day, d), 0, 0, 0, 0, now.Location())
	if day.Day() != intOr(req.Day, d) {
		return models.SyncUnit{}, errors.New("day is out of range for month")
	}
	return models.BasketballDay(day), nil
}

// POST /api/sync
func (h *handlers) handleSync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sport, err := models.ParseSport(req.Sport)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid sport")
		return
	}

	// A basketball month without a day backfills the whole month
	if sport == models.SportBasketball && req.Month != nil && req.Day == nil {
		h.syncMonth(w, r, req)
		return
	}

	unit, err := unitFor(sport, req, h.now().In(h.Sync.Location()))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.Sync.Sync(r.Context(), sport, unit)
	if err != nil {
		writeFailure(w, r, err, "Sync failed")
		return
	}

	resp := syncResponse{
		Success: res.Outcome != scoresync.OutcomeUpstreamFailure,
		Outcome: res.Outcome,
		Synced:  res.Synced,
		Skipped: res.Skipped,
		Total:   res.Total,
		Created: res.Created,
		Unit:    res.Unit,
	}
	if res.Outcome == scoresync.OutcomeUpstreamFailure {
		_, resp.Error = statusFor(res.Err, "Failed to fetch NCAA data")
		writeJSON(w, http.StatusBadGateway, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) syncMonth(w http.ResponseWriter, r *http.Request, req syncRequest) {
	month := *req.Month
	if month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "month must be between 1 and 12")
		return
	}
	year := intOr(req.Year, h.now().In(h.Sync.Location()).Year())

	batch, err := h.Sync.SyncBasketballMonth(r.Context(), year, time.Month(month))
	if batch == nil {
		writeFailure(w, r, err, "Sync failed")
		return
	}

	resp := batchResponse{
		Success: err == nil,
		Synced:  batch.Synced,
		Skipped: batch.Skipped,
		Units:   batch.Units,
	}
	if err != nil {
		// Days that stored before the failure still count
		status, msg := reportFailure(r, err, "Sync failed")
		resp.Error = msg
		writeJSON(w, status, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /api/sync?sport=
func (h *handlers) handleSyncStatus(w http.ResponseWriter, r *http.Request) {
	sport := strings.TrimSpace(r.URL.Query().Get("sport"))
	if sport == "" {
		writeError(w, http.StatusBadRequest, "Sport required")
		return
	}

	games, err := h.Sync.GamesNeedingUpdate(r.Context(), sport, h.now())
	if err != nil {
		writeFailure(w, r, err, "Failed to check sync status")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"gamesNeedingUpdate": len(games),
		"games":              games,
	})
}

// GET /api/cron/sync
func (h *handlers) handleCronSync(w http.ResponseWriter, r *http.Request) {
	run, err := h.Sync.RunScheduled(r.Context(), h.now())
	if run == nil {
		writeFailure(w, r, err, "Sync failed")
		return
	}
	if err != nil {
		status, msg := reportFailure(r, err, "Sync failed")
		resp := *run
		resp.Error = msg
		writeJSON(w, status, resp)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// POST /api/grade
func (h *handlers) handleGrade(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Grader.GradeCompletedPicks(r.Context())
	if err != nil {
		writeFailure(w, r, err, "Grading failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"picksUpdated": sum.PicksUpdated,
		"gamesGraded":  sum.GamesGraded,
		"tiesSkipped":  sum.TiesSkipped,
	})
}
