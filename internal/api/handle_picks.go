package api

import (
	"net/http"

	"github.com/Williamsdg/sportspredictions/internal/auth"
)

type pickRequest struct {
	GameID       int `json:"gameId"`
	PickedTeamID int `json:"pickedTeamId"`
}

// GET /api/picks?sport=&week=
func (h *handlers) handleListPicks(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.CurrentUser(r.Context())
	if err != nil {
		writeFailure(w, r, err, "Unauthorized")
		return
	}

	week, ok := queryWeek(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid week")
		return
	}

	picks, err := h.Picks.List(r.Context(), userID, querySport(r), week)
	if err != nil {
		writeFailure(w, r, err, "Failed to fetch picks")
		return
	}

	views := make([]*pickView, 0, len(picks))
	for _, p := range picks {
		views = append(views, newPickWithGameView(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"picks": views})
}

// POST /api/picks
func (h *handlers) handleSubmitPick(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.CurrentUser(r.Context())
	if err != nil {
		writeFailure(w, r, err, "Unauthorized")
		return
	}

	var req pickRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pick, err := h.Picks.Submit(r.Context(), userID, req.GameID, req.PickedTeamID, h.now())
	if err != nil {
		writeFailure(w, r, err, "Failed to submit pick")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pick": newPickView(*pick)})
}

// DELETE /api/picks
func (h *handlers) handleDeletePick(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.CurrentUser(r.Context())
	if err != nil {
		writeFailure(w, r, err, "Unauthorized")
		return
	}

	var req pickRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.GameID == 0 {
		writeError(w, http.StatusBadRequest, "Game ID is required")
		return
	}

	if err := h.Picks.Delete(r.Context(), userID, req.GameID, h.now()); err != nil {
		writeFailure(w, r, err, "Failed to delete pick")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GET /api/picks/record?sport=
func (h *handlers) handlePickRecord(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.CurrentUser(r.Context())
	if err != nil {
		writeFailure(w, r, err, "Unauthorized")
		return
	}

	rec, err := h.Picks.Record(r.Context(), userID, querySport(r))
	if err != nil {
		writeFailure(w, r, err, "Failed to fetch record")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
