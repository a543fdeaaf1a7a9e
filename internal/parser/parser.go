// Package parser normalizes raw scoreboard records.
package parser

import (
	"database/sql"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Williamsdg/sportspredictions/internal/models"
)

// External game-state tags
const (
	StateFinal = "final"
	StateLive  = "live"
	StatePre   = "pre"
)

// ParseGameState maps a raw record to its status and scores. It never fails:
// unknown tags are SCHEDULED and unusable scores are null.
func ParseGameState(game models.ScoreboardGame) models.GameState {
	return models.GameState{
		Status:    ParseStatus(game.GameState),
		HomeScore: ParseScore(game.Home.Score.String()),
		AwayScore: ParseScore(game.Away.Score.String()),
	}
}

// ParseStatus maps a game-state tag to a status
func ParseStatus(tag string) models.GameStatus {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case StateFinal:
		return models.StatusFinal
	case StateLive:
		return models.StatusInProgress
	default:
		return models.StatusScheduled
	}
}

// ParseScore parses a score string. Leading digits are used when the string
// carries a suffix, so "21 (OT)" reads as 21.
func ParseScore(s string) sql.NullInt32 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return sql.NullInt32{}
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil || n > math.MaxInt32 {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(n), Valid: true}
}

// ParseStartTime converts a start-time epoch in seconds to an instant
func ParseStartTime(epoch string) (time.Time, bool) {
	secs, err := strconv.ParseInt(strings.TrimSpace(epoch), 10, 64)
	if err != nil || secs <= 0 {
		return time.Time{}, false
	}
	return time.Unix(secs, 0).UTC(), true
}
