package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/rs/zerolog/log"

	"github.com/valpere/nalsi/internal/bot"
	"github.com/valpere/nalsi/internal/config"
)

// UpdateProcessor dispatches one Telegram update
type UpdateProcessor interface {
	ProcessUpdate(update *gotgbot.Update) error
}

var (
	processor UpdateProcessor
	initOnce  sync.Once
	initErr   error
)

// Handler is the serverless function entry point for Telegram webhooks
func Handler(w http.ResponseWriter, r *http.Request) {
	// Initialize on first request (cold start)
	initOnce.Do(func() {
		processor, initErr = initialize()
	})

	if initErr != nil {
		log.Error().Err(initErr).Msg("Bot initialization failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	Serve(processor, w, r)
}

// Serve decodes a webhook request and hands the update to p
func Serve(p UpdateProcessor, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read request body")
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var update gotgbot.Update
	if err := json.Unmarshal(body, &update); err != nil {
		log.Error().Err(err).Msg("Failed to parse update")
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	// Process synchronously: the platform may freeze the instance once the response is sent
	if err := p.ProcessUpdate(&update); err != nil {
		log.Error().Err(err).Int64("update_id", update.UpdateId).Msg("Failed to process update")
	}

	// Telegram retries anything but 200
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func initialize() (UpdateProcessor, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Logger = bot.NewLogger(cfg.Logging)

	return bot.New(cfg)
}
