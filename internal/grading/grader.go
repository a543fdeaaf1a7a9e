// Package grading assigns correctness to picks on completed games.
package grading

import (
	"context"
	"fmt"

	"github.com/Williamsdg/sportspredictions/internal/metrics"
	"github.com/Williamsdg/sportspredictions/internal/models"

	"github.com/rs/zerolog/log"
)

// GameStore lists final games that still have ungraded picks
type GameStore interface {
	ListGradable(ctx context.Context) ([]models.Game, error)
}

// PickStore grades the ungraded picks of one game
type PickStore interface {
	GradeForGame(ctx context.Context, gameID, winnerTeamID int) (int64, error)
}

// Summary reports one grading pass
type Summary struct {
	GamesGraded  int `json:"gamesGraded"`
	PicksUpdated int `json:"picksUpdated"`
	TiesSkipped  int `json:"tiesSkipped"`
}

// Grader grades picks once their game is final
type Grader struct {
	games GameStore
	picks PickStore
}

// NewGrader creates a grader
func NewGrader(games GameStore, picks PickStore) *Grader {
	return &Grader{games: games, picks: picks}
}

// GradeCompletedPicks grades every ungraded pick on a final game with both
// scores. Picks that already carry a result are never touched, so repeated
// passes are no-ops. Tied games have no winner; their picks stay ungraded.
func (g *Grader) GradeCompletedPicks(ctx context.Context) (Summary, error) {
	var sum Summary

	games, err := g.games.ListGradable(ctx)
	if err != nil {
		metrics.RecordGrading("error", 0, 0)
		return sum, fmt.Errorf("failed to list gradable games: %w", err)
	}

	for i := range games {
		game := &games[i]

		winner, ok := game.Winner()
		if !ok {
			if game.IsTie() {
				sum.TiesSkipped++
				log.Warn().
					Int("game_id", game.ID).
					Int32("score", game.HomeScore.Int32).
					Msg("Tied final game, picks left ungraded")
			}
			continue
		}

		n, err := g.picks.GradeForGame(ctx, game.ID, winner)
		if err != nil {
			metrics.RecordGrading("error", sum.PicksUpdated, sum.TiesSkipped)
			return sum, fmt.Errorf("failed to grade game %d: %w", game.ID, err)
		}

		sum.GamesGraded++
		sum.PicksUpdated += int(n)
		log.Debug().
			Int("game_id", game.ID).
			Int("winner_team_id", winner).
			Int64("picks_updated", n).
			Msg("Game graded")
	}

	metrics.RecordGrading("success", sum.PicksUpdated, sum.TiesSkipped)
	log.Info().
		Int("games_graded", sum.GamesGraded).
		Int("picks_updated", sum.PicksUpdated).
		Int("ties_skipped", sum.TiesSkipped).
		Msg("Grading complete")

	return sum, nil
}
