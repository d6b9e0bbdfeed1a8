package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/rs/zerolog"

	"github.com/valpere/nalsi/internal/interfaces"
	"github.com/valpere/nalsi/internal/middleware"
	"github.com/valpere/nalsi/internal/services"
	"github.com/valpere/nalsi/pkg/metrics"
	"github.com/valpere/nalsi/pkg/weather"
)

const requestTimeout = 30 * time.Second

type CommandHandler struct {
	users        interfaces.UserServiceInterface
	weather      interfaces.WeatherServiceInterface
	localization interfaces.LocalizationServiceInterface
	limiter      *middleware.RateLimiter
	metrics      *metrics.Metrics
	logger       *zerolog.Logger
	defaultCity  string
}

func New(svcs *services.Services, limiter *middleware.RateLimiter, metricsCollector *metrics.Metrics, logger *zerolog.Logger) *CommandHandler {
	return NewWithServices(svcs.User, svcs.Weather, svcs.Localization, limiter, metricsCollector, logger)
}

// NewWithServices builds a handler over individual services; limiter and metrics may be nil
func NewWithServices(
	users interfaces.UserServiceInterface,
	weatherService interfaces.WeatherServiceInterface,
	localization interfaces.LocalizationServiceInterface,
	limiter *middleware.RateLimiter,
	metricsCollector *metrics.Metrics,
	logger *zerolog.Logger,
) *CommandHandler {
	return &CommandHandler{
		users:        users,
		weather:      weatherService,
		localization: localization,
		limiter:      limiter,
		metrics:      metricsCollector,
		logger:       logger,
	}
}

func newRequestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(services.WithRequestID(context.Background()), requestTimeout)
}

// Start command handler
func (h *CommandHandler) Start(bot *gotgbot.Bot, ctx *ext.Context) error {
	reqCtx, cancel := newRequestContext()
	defer cancel()

	user := ctx.EffectiveUser
	lang := h.language(reqCtx, user)

	if err := h.users.RegisterUser(reqCtx, user, lang); err != nil {
		h.logger.Error().Err(err).Int64("user_id", user.Id).Msg("Failed to register user")
	}

	text := h.localization.T(reqCtx, lang, "start_welcome", user.FirstName) +
		"\n\n" + h.localization.T(reqCtx, lang, "help_text")

	_, err := bot.SendMessage(ctx.EffectiveChat.Id, text, &gotgbot.SendMessageOpts{
		ReplyMarkup: h.locationKeyboard(reqCtx, lang),
	})
	return err
}

// Help command handler
func (h *CommandHandler) Help(bot *gotgbot.Bot, ctx *ext.Context) error {
	reqCtx, cancel := newRequestContext()
	defer cancel()

	lang := h.language(reqCtx, ctx.EffectiveUser)
	return h.reply(bot, ctx, h.localization.T(reqCtx, lang, "help_text"))
}

// CurrentWeather handles /weather [city]
func (h *CommandHandler) CurrentWeather(bot *gotgbot.Bot, ctx *ext.Context) error {
	return h.lookupCommand(bot, ctx, "current", interfaces.WantCurrent)
}

// Forecast handles /forecast [city]
func (h *CommandHandler) Forecast(bot *gotgbot.Bot, ctx *ext.Context) error {
	return h.lookupCommand(bot, ctx, "forecast", interfaces.WantForecast)
}

func (h *CommandHandler) lookupCommand(bot *gotgbot.Bot, ctx *ext.Context, purpose string, want interfaces.Want) error {
	reqCtx, cancel := newRequestContext()
	defer cancel()

	user := ctx.EffectiveUser
	lang := h.language(reqCtx, user)

	q, ok, err := h.queryFromArgs(reqCtx, ctx, user.Id)
	if err != nil {
		h.logger.Error().Err(err).Int64("user_id", user.Id).Msg("Failed to load saved location")
		return h.reply(bot, ctx, h.localization.T(reqCtx, lang, "error_internal"))
	}
	if !ok {
		return h.reply(bot, ctx, h.localization.T(reqCtx, lang, "no_location"))
	}

	text, ok := h.lookupText(reqCtx, ctx, user.Id, purpose, q, lang, want)
	if !ok {
		return nil
	}
	return h.reply(bot, ctx, text)
}

// SetDefaultCity sets the city looked up for users with no saved location.
// An empty city asks such users to save one instead.
func (h *CommandHandler) SetDefaultCity(city string) {
	h.defaultCity = strings.TrimSpace(city)
}

// SetCity handles /setcity <city>
func (h *CommandHandler) SetCity(bot *gotgbot.Bot, ctx *ext.Context) error {
	reqCtx, cancel := newRequestContext()
	defer cancel()

	user := ctx.EffectiveUser
	lang := h.language(reqCtx, user)

	city := argText(ctx)
	if city == "" {
		return h.reply(bot, ctx, h.localization.T(reqCtx, lang, "setcity_usage"))
	}

	if err := h.saveUser(reqCtx, user, lang, func() error {
		return h.users.SetCity(reqCtx, user.Id, city)
	}); err != nil {
		if weather.Kind(err) == weather.KindInput {
			return h.reply(bot, ctx, h.localization.T(reqCtx, lang, "error_input_city"))
		}
		h.logger.Error().Err(err).Int64("user_id", user.Id).Msg("Failed to save city")
		return h.reply(bot, ctx, h.localization.T(reqCtx, lang, "error_internal"))
	}

	return h.reply(bot, ctx, h.localization.T(reqCtx, lang, "setcity_saved", city))
}

// Language handles /language <code or name>
func (h *CommandHandler) Language(bot *gotgbot.Bot, ctx *ext.Context) error {
	reqCtx, cancel := newRequestContext()
	defer cancel()

	user := ctx.EffectiveUser
	lang := h.language(reqCtx, user)

	arg := argText(ctx)
	if arg == "" {
		codes := strings.Join(h.localization.SupportedCodes(), ", ")
		return h.reply(bot, ctx, h.localization.T(reqCtx, lang, "language_usage", codes))
	}

	code, ok := h.localization.DetectLanguageFromName(arg)
	if !ok {
		return h.reply(bot, ctx, h.localization.T(reqCtx, lang, "language_unsupported", arg))
	}

	if err := h.saveUser(reqCtx, user, lang, func() error {
		return h.users.SetLanguage(reqCtx, user.Id, code)
	}); err != nil {
		h.logger.Error().Err(err).Int64("user_id", user.Id).Msg("Failed to save language")
		return h.reply(bot, ctx, h.localization.T(reqCtx, lang, "error_internal"))
	}

	_, err := bot.SendMessage(ctx.EffectiveChat.Id, h.localization.T(reqCtx, code, "language_saved", h.localization.LanguageLabel(code)), &gotgbot.SendMessageOpts{
		ReplyMarkup: h.locationKeyboard(reqCtx, code),
	})
	return err
}

// HandleLocationMessage fetches weather for a shared location and saves it as the default
func (h *CommandHandler) HandleLocationMessage(bot *gotgbot.Bot, ctx *ext.Context) error {
	reqCtx, cancel := newRequestContext()
	defer cancel()

	user := ctx.EffectiveUser
	lang := h.language(reqCtx, user)
	loc := ctx.EffectiveMessage.Location
	q := weather.ByCoords(loc.Latitude, loc.Longitude)

	if !h.allow(user.Id) {
		return h.reply(bot, ctx, h.localization.T(reqCtx, lang, "error_rate_limited"))
	}

	report := h.weather.Lookup(reqCtx, lookupKey(viewLookup, ctx.EffectiveChat.Id), q, lang, interfaces.WantBoth)
	if report.Stale {
		return nil
	}

	text := h.reportText(reqCtx, lang, q, report, "error_location")
	if report.CurrentErr == nil {
		city := report.Current.CityName
		if err := h.saveUser(reqCtx, user, lang, func() error {
			return h.users.SetCoordinates(reqCtx, user.Id, loc.Latitude, loc.Longitude, city)
		}); err != nil {
			h.logger.Error().Err(err).Int64("user_id", user.Id).Msg("Failed to save location")
		} else {
			text += "\n\n" + h.localization.T(reqCtx, lang, "location_saved", city)
		}
	}

	return h.reply(bot, ctx, text)
}

// HandleTextMessage treats plain text as a city search
func (h *CommandHandler) HandleTextMessage(bot *gotgbot.Bot, ctx *ext.Context) error {
	reqCtx, cancel := newRequestContext()
	defer cancel()

	user := ctx.EffectiveUser
	lang := h.language(reqCtx, user)
	q := weather.ByName(ctx.EffectiveMessage.Text)

	text, ok := h.lookupText(reqCtx, ctx, user.Id, viewLookup, q, lang, interfaces.WantBoth)
	if !ok {
		return nil
	}
	return h.reply(bot, ctx, text)
}

// lookupText runs a rate-limited lookup and renders it; ok is false when a
// newer request from the same chat superseded this one
func (h *CommandHandler) lookupText(ctx context.Context, ectx *ext.Context, userID int64, purpose string, q weather.LocationQuery, lang string, want interfaces.Want) (string, bool) {
	if err := q.Validate(); err != nil {
		return ErrorText(ctx, h.localization, lang, err, "error_weather", q), true
	}
	if !h.allow(userID) {
		return h.localization.T(ctx, lang, "error_rate_limited"), true
	}

	report := h.weather.Lookup(ctx, lookupKey(purpose, ectx.EffectiveChat.Id), q, lang, want)
	if report.Stale {
		return "", false
	}

	switch want {
	case interfaces.WantCurrent:
		if report.CurrentErr != nil {
			return ErrorText(ctx, h.localization, lang, report.CurrentErr, "error_weather", q), true
		}
		return FormatCurrent(ctx, h.localization, lang, report.Current), true
	case interfaces.WantForecast:
		if report.ForecastErr != nil {
			return ErrorText(ctx, h.localization, lang, report.ForecastErr, "error_forecast", q), true
		}
		return FormatForecast(ctx, h.localization, lang, placeName(q, report), report.Forecast), true
	default:
		return h.reportText(ctx, lang, q, report, "error_weather"), true
	}
}

// reportText renders both parts of a report under their section names
func (h *CommandHandler) reportText(ctx context.Context, lang string, q weather.LocationQuery, report interfaces.WeatherReport, currentErrKey string) string {
	var b strings.Builder

	b.WriteString("[" + h.localization.T(ctx, lang, "tab_current") + "]\n")
	if report.CurrentErr != nil {
		b.WriteString(ErrorText(ctx, h.localization, lang, report.CurrentErr, currentErrKey, q))
	} else {
		b.WriteString(FormatCurrent(ctx, h.localization, lang, report.Current))
	}

	b.WriteString("\n\n[" + h.localization.T(ctx, lang, "tab_forecast") + "]\n")
	if report.ForecastErr != nil {
		b.WriteString(ErrorText(ctx, h.localization, lang, report.ForecastErr, "error_forecast", q))
	} else {
		b.WriteString(FormatForecast(ctx, h.localization, lang, placeName(q, report), report.Forecast))
	}

	return b.String()
}

// queryFromArgs returns the city given after the command, or the user's saved location
func (h *CommandHandler) queryFromArgs(ctx context.Context, ectx *ext.Context, userID int64) (weather.LocationQuery, bool, error) {
	if city := argText(ectx); city != "" {
		return weather.ByName(city), true, nil
	}

	q, ok, err := h.users.SavedQuery(ctx, userID)
	if err != nil || ok || h.defaultCity == "" {
		return q, ok, err
	}
	return weather.ByName(h.defaultCity), true, nil
}

// language returns the user's saved language, or the closest match to their Telegram client language
func (h *CommandHandler) language(ctx context.Context, user *gotgbot.User) string {
	fallback := h.localization.ResolveLanguage(user.LanguageCode)
	return h.users.GetLanguage(ctx, user.Id, fallback)
}

// saveUser makes sure the user row exists before applying save
func (h *CommandHandler) saveUser(ctx context.Context, user *gotgbot.User, lang string, save func() error) error {
	if err := h.users.RegisterUser(ctx, user, lang); err != nil {
		return err
	}
	return save()
}

func (h *CommandHandler) allow(userID int64) bool {
	if h.limiter == nil || h.limiter.AllowUser(userID) {
		return true
	}

	if h.metrics != nil {
		h.metrics.IncrementCounter("rate_limited_total", "bot")
	}
	h.logger.Warn().Int64("user_id", userID).Msg("Rate limit exceeded")
	return false
}

func (h *CommandHandler) locationKeyboard(ctx context.Context, lang string) *gotgbot.ReplyKeyboardMarkup {
	return &gotgbot.ReplyKeyboardMarkup{
		Keyboard: [][]gotgbot.KeyboardButton{
			{{Text: h.localization.T(ctx, lang, "button_share_location"), RequestLocation: true}},
		},
		ResizeKeyboard: true,
	}
}

func (h *CommandHandler) reply(bot *gotgbot.Bot, ctx *ext.Context, text string) error {
	_, err := bot.SendMessage(ctx.EffectiveChat.Id, text, nil)
	return err
}

// argText joins everything after the command, e.g. "New York" for "/weather New York"
func argText(ctx *ext.Context) string {
	args := ctx.Args()
	if len(args) < 2 {
		return ""
	}
	return strings.TrimSpace(strings.Join(args[1:], " "))
}

// viewLookup is shared by every action that replaces the chat's whole weather
// view, so a shared location and a city search supersede each other
const viewLookup = "lookup"

func lookupKey(purpose string, chatID int64) string {
	return fmt.Sprintf("%s:%d", purpose, chatID)
}

// placeName names the forecast location: the city for a name query, else the
// city the provider reported for the coordinates
func placeName(q weather.LocationQuery, report interfaces.WeatherReport) string {
	if !q.IsCoords() {
		return q.City()
	}
	if report.CurrentErr == nil && report.Current.CityName != "" {
		return report.Current.CityName
	}
	return q.String()
}
