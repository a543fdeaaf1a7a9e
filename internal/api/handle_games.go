package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Williamsdg/sportspredictions/internal/models"
)

func queryWeek(r *http.Request) (*int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("week"))
	if raw == "" {
		return nil, true
	}
	week, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &week, true
}

func querySport(r *http.Request) string {
	if sport := strings.TrimSpace(r.URL.Query().Get("sport")); sport != "" {
		return sport
	}
	return models.SportFootball
}

func inConference(g models.GameWithTeams, conference string) bool {
	return g.HomeTeam.Conference.String == conference || g.AwayTeam.Conference.String == conference
}

// GET /api/games?sport=&week=&conference=
func (h *handlers) handleGames(w http.ResponseWriter, r *http.Request) {
	week, ok := queryWeek(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid week")
		return
	}

	target, err := h.Sync.Target(r.Context(), querySport(r))
	if err != nil {
		writeFailure(w, r, err, "Failed to fetch games")
		return
	}

	games, err := h.Games.ListBySeason(r.Context(), target.Season.ID, week)
	if err != nil {
		writeFailure(w, r, err, "Failed to fetch games")
		return
	}

	conference := strings.TrimSpace(r.URL.Query().Get("conference"))
	views := make([]*gameView, 0, len(games))
	for _, g := range games {
		if conference != "" && conference != "all" && !inConference(g, conference) {
			continue
		}
		views = append(views, newGameWithTeamsView(g))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"games":  views,
		"season": newSeasonView(target.Season),
	})
}
