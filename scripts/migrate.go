package main

import (
	"github.com/rs/zerolog/log"

	"github.com/valpere/nalsi/internal/bot"
	"github.com/valpere/nalsi/internal/config"
	"github.com/valpere/nalsi/internal/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log.Logger = bot.NewLogger(cfg.Logging)

	// Connect migrates the schema before returning
	db, err := database.Connect(&cfg.Database, cfg.Bot.Debug)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}
	defer database.Close(db)

	log.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.Name).
		Msg("Migrations completed successfully")
}
