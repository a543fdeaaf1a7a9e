// Package picks handles pick submission, removal and per-user records.
package picks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Williamsdg/sportspredictions/internal/metrics"
	"github.com/Williamsdg/sportspredictions/internal/models"
	"github.com/Williamsdg/sportspredictions/internal/repository"

	"github.com/rs/zerolog/log"
)

var (
	ErrMissingField = errors.New("missing required fields")
	ErrGameNotFound = errors.New("game not found")
	ErrPickLocked   = errors.New("cannot pick after game has started")
	ErrUndoLocked   = errors.New("cannot undo after game has started")
	ErrInvalidTeam  = errors.New("invalid team selection")
	ErrPickNotFound = errors.New("pick not found")
	ErrPickGraded   = errors.New("pick has already been graded")
)

// GameStore reads games
type GameStore interface {
	GetByID(ctx context.Context, id int) (*models.Game, error)
}

// PickStore persists picks
type PickStore interface {
	Upsert(ctx context.Context, pick *models.Pick) error
	Delete(ctx context.Context, userID string, gameID int) error
	ListByUser(ctx context.Context, userID string, seasonID int, week *int) ([]models.PickWithGame, error)
	RecordForUser(ctx context.Context, userID string, seasonID int) (*models.PickRecord, error)
}

// SeasonResolver finds the active season of a sport
type SeasonResolver interface {
	ActiveSeason(ctx context.Context, sportSlug string) (*models.Season, error)
}

// Service enforces the pick rules
type Service struct {
	games   GameStore
	picks   PickStore
	seasons SeasonResolver
}

// NewService creates a picks service
func NewService(games GameStore, picks PickStore, seasons SeasonResolver) *Service {
	return &Service{games: games, picks: picks, seasons: seasons}
}

// Submit creates or changes a user's pick. Picks lock at tipoff.
func (s *Service) Submit(ctx context.Context, userID string, gameID, pickedTeamID int, now time.Time) (*models.Pick, error) {
	if userID == "" || gameID == 0 || pickedTeamID == 0 {
		return nil, s.reject("submit", ErrMissingField)
	}

	game, err := s.game(ctx, gameID)
	if err != nil {
		return nil, s.reject("submit", err)
	}
	if game.HasStarted(now) {
		return nil, s.reject("submit", ErrPickLocked)
	}
	if !game.HasTeam(pickedTeamID) {
		return nil, s.reject("submit", ErrInvalidTeam)
	}

	pick := &models.Pick{UserID: userID, GameID: gameID, PickedTeamID: pickedTeamID}
	if err := s.picks.Upsert(ctx, pick); err != nil {
		if errors.Is(err, repository.ErrPickGraded) {
			return nil, s.reject("submit", ErrPickGraded)
		}
		metrics.RecordPickMutation("submit", "error")
		return nil, fmt.Errorf("failed to save pick: %w", err)
	}

	metrics.RecordPickMutation("submit", "success")
	log.Info().
		Str("user_id", userID).
		Int("game_id", gameID).
		Int("picked_team_id", pickedTeamID).
		Msg("Pick saved")

	return pick, nil
}

// Delete removes a user's pick. Removal locks at tipoff like submission.
func (s *Service) Delete(ctx context.Context, userID string, gameID int, now time.Time) error {
	if userID == "" || gameID == 0 {
		return s.reject("delete", ErrMissingField)
	}

	game, err := s.game(ctx, gameID)
	if err != nil {
		return s.reject("delete", err)
	}
	if game.HasStarted(now) {
		return s.reject("delete", ErrUndoLocked)
	}

	if err := s.picks.Delete(ctx, userID, gameID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.reject("delete", ErrPickNotFound)
		}
		metrics.RecordPickMutation("delete", "error")
		return fmt.Errorf("failed to delete pick: %w", err)
	}

	metrics.RecordPickMutation("delete", "success")
	log.Info().Str("user_id", userID).Int("game_id", gameID).Msg("Pick deleted")
	return nil
}

// List returns a user's picks in the sport's active season, optionally for one week
func (s *Service) List(ctx context.Context, userID, sportSlug string, week *int) ([]models.PickWithGame, error) {
	season, err := s.seasons.ActiveSeason(ctx, sportSlug)
	if err != nil {
		return nil, err
	}

	picks, err := s.picks.ListByUser(ctx, userID, season.ID, week)
	if err != nil {
		return nil, fmt.Errorf("failed to list picks: %w", err)
	}
	if picks == nil {
		picks = []models.PickWithGame{}
	}
	return picks, nil
}

// Record summarizes a user's picks in the sport's active season
func (s *Service) Record(ctx context.Context, userID, sportSlug string) (*models.PickRecord, error) {
	season, err := s.seasons.ActiveSeason(ctx, sportSlug)
	if err != nil {
		return nil, err
	}

	rec, err := s.picks.RecordForUser(ctx, userID, season.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pick record: %w", err)
	}
	return rec, nil
}

func (s *Service) game(ctx context.Context, gameID int) (*models.Game, error) {
	game, err := s.games.GetByID(ctx, gameID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return game, nil
}

// reject records a refused mutation; storage errors pass through unchanged
func (s *Service) reject(action string, err error) error {
	switch {
	case errors.Is(err, ErrMissingField), errors.Is(err, ErrGameNotFound),
		errors.Is(err, ErrPickLocked), errors.Is(err, ErrUndoLocked),
		errors.Is(err, ErrInvalidTeam), errors.Is(err, ErrPickNotFound),
		errors.Is(err, ErrPickGraded):
		metrics.RecordPickMutation(action, "rejected")
	default:
		metrics.RecordPickMutation(action, "error")
	}
	return err
}
