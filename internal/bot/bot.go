package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/valpere/nalsi/internal/api"
	"github.com/valpere/nalsi/internal/config"
	"github.com/valpere/nalsi/internal/database"
	"github.com/valpere/nalsi/internal/handlers/commands"
	"github.com/valpere/nalsi/internal/locales"
	"github.com/valpere/nalsi/internal/middleware"
	"github.com/valpere/nalsi/internal/services"
	"github.com/valpere/nalsi/internal/version"
	"github.com/valpere/nalsi/pkg/metrics"
)

const userCountInterval = 5 * time.Minute

type Bot struct {
	bot        *gotgbot.Bot
	updater    *ext.Updater
	dispatcher *ext.Dispatcher
	config     *config.Config
	logger     zerolog.Logger
	db         *gorm.DB
	services   *services.Services
	limiter    *middleware.RateLimiter
	server     *http.Server
	metrics    *metrics.Metrics
}

func New(cfg *config.Config) (*Bot, error) {
	logger := NewLogger(cfg.Logging).With().Str("component", "bot").Logger()

	metricsCollector := metrics.New()

	db, err := database.Connect(&cfg.Database, cfg.Bot.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	svcs, err := services.New(db, cfg, &logger, metricsCollector)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := svcs.Localization.LoadTranslations(locales.LocalesFS); err != nil {
		logger.Error().Err(err).Msg("Failed to load translations, continuing with fallback")
	}

	botInstance, err := gotgbot.NewBot(cfg.Bot.Token, &gotgbot.BotOpts{
		BotClient: &gotgbot.BaseBotClient{
			Client: http.Client{Timeout: 30 * time.Second},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(b *gotgbot.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			logger.Error().Err(err).Msg("Update processing error")
			return ext.DispatcherActionNoop
		},
	})
	updater := ext.NewUpdater(dispatcher, &ext.UpdaterOpts{})

	weatherBot := &Bot{
		bot:        botInstance,
		updater:    updater,
		dispatcher: dispatcher,
		config:     cfg,
		logger:     logger,
		db:         db,
		services:   svcs,
		limiter:    middleware.NewRateLimiter(cfg.Weather.Limit(), cfg.Weather.RateBurst),
		metrics:    metricsCollector,
	}

	cmdHandler := commands.New(svcs, weatherBot.limiter, metricsCollector, &weatherBot.logger)
	cmdHandler.SetDefaultCity(cfg.Weather.DefaultCity)
	RegisterHandlers(dispatcher, cmdHandler, metricsCollector, &weatherBot.logger)

	weatherBot.setupHTTPServer()

	return weatherBot, nil
}

// NewLogger builds the process logger from the logging settings
func NewLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stdout)
	}

	return logger.Level(level).With().Timestamp().Logger()
}

// RegisterHandlers routes commands, shared locations and plain text to h
func RegisterHandlers(dispatcher *ext.Dispatcher, h *commands.CommandHandler, m *metrics.Metrics, logger *zerolog.Logger) {
	command := func(name string, response handlers.Response) {
		dispatcher.AddHandler(handlers.NewCommand(name, middleware.Instrument(m, logger, "command_"+name, response)))
	}

	command("start", h.Start)
	command("help", h.Help)
	command("weather", h.CurrentWeather)
	command("forecast", h.Forecast)
	command("setcity", h.SetCity)
	command("language", h.Language)

	dispatcher.AddHandler(handlers.NewMessage(IsLocationMessage,
		middleware.Instrument(m, logger, "location", h.HandleLocationMessage)))

	dispatcher.AddHandler(handlers.NewMessage(IsCitySearch,
		middleware.Instrument(m, logger, "text", h.HandleTextMessage)))
}

// IsLocationMessage matches a shared location
func IsLocationMessage(msg *gotgbot.Message) bool {
	return msg.Location != nil
}

// IsCitySearch matches plain text that is not a command
func IsCitySearch(msg *gotgbot.Message) bool {
	return msg.Text != "" && msg.Location == nil && !strings.HasPrefix(msg.Text, "/")
}

func (b *Bot) setupHTTPServer() {
	gin.SetMode(gin.ReleaseMode)

	opts := api.Options{
		Weather: b.services.Weather,
		Metrics: b.metrics,
		Limiter: b.limiter,
		Logger:  &b.logger,
	}
	if b.config.Bot.WebhookURL != "" {
		opts.Webhook = b.handleWebhook
	}

	b.server = &http.Server{
		Addr:         ":" + strconv.Itoa(b.config.Bot.WebhookPort),
		Handler:      api.NewRouter(opts),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

func (b *Bot) handleWebhook(c *gin.Context) {
	var update gotgbot.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		b.logger.Error().Err(err).Msg("Failed to parse webhook update")
		c.Status(http.StatusBadRequest)
		return
	}

	if err := b.ProcessUpdate(&update); err != nil {
		b.logger.Error().Err(err).Int64("update_id", update.UpdateId).Msg("Failed to process update")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// ProcessUpdate dispatches one Telegram update synchronously
func (b *Bot) ProcessUpdate(update *gotgbot.Update) error {
	return b.dispatcher.ProcessUpdate(b.bot, update, nil)
}

func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info().Str("version", version.GetInfo().Short()).Msg("Starting Nalsi bot...")

	go func() {
		if err := b.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			b.logger.Fatal().Err(err).Msg("HTTP server failed to start")
		}
	}()

	b.logger.Info().
		Int("port", b.config.Bot.WebhookPort).
		Msg("HTTP server started")

	if b.config.Bot.WebhookURL != "" {
		if err := b.setupWebhook(); err != nil {
			return fmt.Errorf("failed to setup webhook: %w", err)
		}
	} else {
		b.logger.Info().Msg("Starting polling...")
		if err := b.updater.StartPolling(b.bot, &ext.PollingOpts{
			DropPendingUpdates: true,
			GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
				Timeout: 10,
				RequestOpts: &gotgbot.RequestOpts{
					Timeout: time.Second * 15,
				},
			},
		}); err != nil {
			return fmt.Errorf("failed to start polling: %w", err)
		}
	}

	go b.trackUserCount(ctx)

	b.logger.Info().Msg("Nalsi bot started successfully")

	<-ctx.Done()
	return nil
}

// trackUserCount keeps the registered_users gauge current
func (b *Bot) trackUserCount(ctx context.Context) {
	ticker := time.NewTicker(userCountInterval)
	defer ticker.Stop()

	for {
		if _, err := b.services.User.RefreshUserCount(ctx); err != nil && ctx.Err() == nil {
			b.logger.Warn().Err(err).Msg("Failed to refresh user count")
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func (b *Bot) setupWebhook() error {
	webhookURL := strings.TrimSuffix(b.config.Bot.WebhookURL, "/") + "/webhook"

	_, err := b.bot.SetWebhook(webhookURL, &gotgbot.SetWebhookOpts{
		MaxConnections:     100,
		DropPendingUpdates: true,
	})
	if err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	b.logger.Info().
		Str("webhook_url", webhookURL).
		Msg("Webhook configured")

	return nil
}

func (b *Bot) Stop() error {
	b.logger.Info().Msg("Stopping Nalsi bot...")

	if b.config.Bot.WebhookURL == "" {
		if err := b.updater.Stop(); err != nil {
			b.logger.Error().Err(err).Msg("Updater stop error")
		}
	}

	if b.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := b.server.Shutdown(ctx); err != nil {
			b.logger.Error().Err(err).Msg("HTTP server shutdown error")
		}
	}

	b.limiter.Stop()

	if err := database.Close(b.db); err != nil {
		b.logger.Error().Err(err).Msg("Database close error")
	}

	b.logger.Info().Msg("Nalsi bot stopped")
	return nil
}
