// Package seed loads the reference sports, seasons and teams.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Williamsdg/sportspredictions/internal/models"

	"github.com/rs/zerolog/log"
)

// SportStore writes sports
type SportStore interface {
	Upsert(ctx context.Context, sport *models.Sport) error
}

// SeasonStore writes seasons
type SeasonStore interface {
	Upsert(ctx context.Context, season *models.Season) error
}

// TeamStore writes teams
type TeamStore interface {
	Upsert(ctx context.Context, team *models.Team) error
}

// Stores are the repositories the seed writes through
type Stores struct {
	Sports  SportStore
	Seasons SeasonStore
	Teams   TeamStore
}

// SeasonDates are the bounds of one seeded season
type SeasonDates struct {
	Year  int
	Start time.Time
	End   time.Time
}

var seasons = map[string]SeasonDates{
	models.SportFootball: {
		Year:  2024,
		Start: time.Date(2024, 8, 24, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
	},
	models.SportBasketball: {
		Year:  2024,
		Start: time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC),
	},
}

type sportSeed struct {
	slug        string
	name        string
	conferences []Conference
}

var sports = []sportSeed{
	{models.SportFootball, "Football", FootballConferences},
	{models.SportBasketball, "Basketball", BasketballConferences},
}

// Summary counts what a seed run wrote
type Summary struct {
	Sports  int
	Seasons int
	Teams   int
}

// Run upserts both sports, their active season and every team. It is safe
// to run repeatedly.
func Run(ctx context.Context, st Stores) (Summary, error) {
	var sum Summary

	for _, sp := range sports {
		sport := &models.Sport{Slug: sp.slug, Name: sp.name}
		if err := st.Sports.Upsert(ctx, sport); err != nil {
			return sum, fmt.Errorf("failed to seed sport %s: %w", sp.slug, err)
		}
		sum.Sports++

		dates := seasons[sp.slug]
		season := &models.Season{
			SportID:   sport.ID,
			Name:      fmt.Sprintf("%d-%02d", dates.Year, (dates.Year+1)%100),
			Year:      dates.Year,
			StartDate: dates.Start,
			EndDate:   dates.End,
			IsActive:  true,
		}
		if err := st.Seasons.Upsert(ctx, season); err != nil {
			return sum, fmt.Errorf("failed to seed %s season: %w", sp.slug, err)
		}
		sum.Seasons++

		for _, conf := range sp.conferences {
			for _, t := range conf.Teams {
				team := &models.Team{
					SportID:      sport.ID,
					Name:         t.Name,
					ShortName:    t.ShortName,
					Abbreviation: t.Abbreviation,
					Conference:   sql.NullString{String: conf.Name, Valid: true},
					PrimaryColor: sql.NullString{String: t.Color, Valid: t.Color != ""},
				}
				if err := st.Teams.Upsert(ctx, team); err != nil {
					return sum, fmt.Errorf("failed to seed team %s: %w", t.Abbreviation, err)
				}
				sum.Teams++
			}
			log.Info().Str("sport", sp.slug).Str("conference", conf.Name).Int("teams", len(conf.Teams)).Msg("Conference seeded")
		}
	}

	log.Info().
		Int("sports", sum.Sports).
		Int("seasons", sum.Seasons).
		Int("teams", sum.Teams).
		Msg("Seed complete")
	return sum, nil
}
