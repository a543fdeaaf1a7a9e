package api

import (
	"errors"
	"net/http"

	"github.com/Williamsdg/sportspredictions/internal/auth"
	"github.com/Williamsdg/sportspredictions/internal/client"
	"github.com/Williamsdg/sportspredictions/internal/metrics"
	"github.com/Williamsdg/sportspredictions/internal/picks"
	"github.com/Williamsdg/sportspredictions/internal/scoresync"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

var errorMappings = []errorMapping{
	{scoresync.ErrInvalidSport, http.StatusBadRequest, "Invalid sport"},
	{scoresync.ErrSportNotFound, http.StatusNotFound, "Sport not found"},
	{scoresync.ErrNoActiveSeason, http.StatusNotFound, "No active season"},
	{client.ErrUpstream, http.StatusBadGateway, "Failed to fetch NCAA data"},
	{picks.ErrMissingField, http.StatusBadRequest, "Game ID and picked team ID are required"},
	{picks.ErrGameNotFound, http.StatusNotFound, "Game not found"},
	{picks.ErrPickLocked, http.StatusBadRequest, "Cannot pick after game has started"},
	{picks.ErrUndoLocked, http.StatusBadRequest, "Cannot undo after game has started"},
	{picks.ErrInvalidTeam, http.StatusBadRequest, "Invalid team selection"},
	{picks.ErrPickNotFound, http.StatusNotFound, "Pick not found"},
	{picks.ErrPickGraded, http.StatusConflict, "Pick has already been graded"},
	{auth.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
}

// statusFor classifies err. Unknown errors are 500 with the fallback message.
func statusFor(err error, fallback string) (int, string) {
	if errors.Is(err, scoresync.ErrInvalidUnit) {
		return http.StatusBadRequest, err.Error()
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, fallback
}

// writeFailure maps err to a response and logs server-side failures
func writeFailure(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status, msg := reportFailure(r, err, fallback)
	writeError(w, status, msg)
}

// reportFailure classifies err, logging it when the status is a server error
func reportFailure(r *http.Request, err error, fallback string) (int, string) {
	status, msg := statusFor(err, fallback)
	if status >= http.StatusInternalServerError {
		metrics.RecordError("api", http.StatusText(status))
		log.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg(fallback)
	}
	return status, msg
}
