// Command syncscores runs one sync pass from the command line and then grades
// completed picks. With no flags it syncs basketball yesterday and today.
//
//	syncscores
//	syncscores -sport basketball -date 2025-01-15
//	syncscores -sport basketball -year 2025 -month 1
//	syncscores -sport football -year 2024 -week 12 -grade=false
//	syncscores -scheduled
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Williamsdg/sportspredictions/internal/app"
	"github.com/Williamsdg/sportspredictions/internal/config"
	"github.com/Williamsdg/sportspredictions/internal/models"

	"github.com/rs/zerolog/log"
)

func main() {
	var (
		sport     = flag.String("sport", models.SportBasketball, "Sport to sync (football or basketball)")
		date      = flag.String("date", "", "Basketball date (YYYY-MM-DD), defaults to today")
		year      = flag.Int("year", 0, "Football season year, or basketball backfill year")
		week      = flag.Int("week", 0, "Football week")
		month     = flag.Int("month", 0, "Basketball month to backfill (1-12)")
		grade     = flag.Bool("grade", true, "Grade completed picks after syncing")
		scheduled = flag.Bool("scheduled", false, "Run the scheduled sync-then-grade pass and exit")
	)
	flag.Parse()

	cfg := config.MustLoad()
	app.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer a.Close()

	now := time.Now().In(cfg.Location())

	if *scheduled {
		run, err := a.Sync.RunScheduled(ctx, now)
		if run == nil {
			log.Fatal().Err(err).Msg("Scheduled sync failed")
		}
		printJSON(run)
		if err != nil {
			log.Fatal().Err(err).Msg("Scheduled sync finished with errors")
		}
		return
	}

	slug, err := models.ParseSport(*sport)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid -sport")
	}

	switch {
	case slug == models.SportBasketball && *month != 0:
		y := *year
		if y == 0 {
			y = now.Year()
		}
		if *month < 1 || *month > 12 {
			log.Fatal().Int("month", *month).Msg("Invalid -month")
		}
		batch, err := a.Sync.SyncBasketballMonth(ctx, y, time.Month(*month))
		if batch == nil {
			log.Fatal().Err(err).Msg("Month backfill failed")
		}
		if err != nil {
			log.Error().Err(err).Msg("Month backfill finished with errors")
		}
		printJSON(batch)

	case slug == models.SportBasketball && *date == "":
		batch, err := a.Sync.SyncBasketballRecent(ctx, now)
		if batch == nil {
			log.Fatal().Err(err).Msg("Recent sync failed")
		}
		if err != nil {
			log.Error().Err(err).Msg("Recent sync finished with errors")
		}
		printJSON(batch)

	default:
		unit, err := unitFromFlags(slug, *date, *year, *week, now)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid sync unit")
		}
		res, err := a.Sync.Sync(ctx, slug, unit)
		if err != nil {
			log.Fatal().Err(err).Msg("Sync failed")
		}
		printJSON(res)
	}

	if *grade {
		sum, err := a.Grader.GradeCompletedPicks(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Grading failed")
		}
		printJSON(sum)
	}
}

func unitFromFlags(sport, date string, year, week int, now time.Time) (models.SyncUnit, error) {
	if sport == models.SportFootball {
		if year == 0 {
			year = now.Year()
		}
		if week == 0 {
			week = 1
		}
		return models.FootballWeek(year, week), nil
	}

	day, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return models.SyncUnit{}, err
	}
	return models.BasketballDay(day), nil
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to write result")
	}
}
