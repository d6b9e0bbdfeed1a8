package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/valpere/nalsi/internal/bot"
	"github.com/valpere/nalsi/internal/config"
	"github.com/valpere/nalsi/internal/version"
)

func main() {
	versionFlag := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println(version.GetInfo().String())
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Logger = bot.NewLogger(cfg.Logging)
	log.Info().Str("version", version.GetInfo().Short()).Msg("Starting Nalsi")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	weatherBot, err := bot.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bot")
	}

	go func() {
		if err := weatherBot.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start bot")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("Shutting down Nalsi...")
	cancel()

	if err := weatherBot.Stop(); err != nil {
		log.Error().Err(err).Msg("Error during shutdown")
	}

	log.Info().Msg("Nalsi stopped gracefully")
}
