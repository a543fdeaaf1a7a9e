// Command seed loads the sports, their active seasons and every team.
package main

import (
	"context"

	"github.com/Williamsdg/sportspredictions/internal/app"
	"github.com/Williamsdg/sportspredictions/internal/config"
	"github.com/Williamsdg/sportspredictions/internal/repository"
	"github.com/Williamsdg/sportspredictions/internal/seed"

	"github.com/rs/zerolog/log"
)

func main() {
	ctx := context.Background()
	cfg := config.MustLoad()
	app.SetupLogger(cfg)

	db, err := repository.NewDatabase(ctx, app.DatabaseConfig(cfg))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	if _, err := seed.Run(ctx, seed.Stores{Sports: db.Sports, Seasons: db.Seasons, Teams: db.Teams}); err != nil {
		log.Fatal().Err(err).Msg("Seed failed")
	}
}
