package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/valpere/nalsi/internal/config"
	"github.com/valpere/nalsi/internal/interfaces"
	"github.com/valpere/nalsi/internal/version"
	"github.com/valpere/nalsi/pkg/weather"
)

// FetcherFactory builds a provider client for one display language
type FetcherFactory func(locale weather.Locale) interfaces.WeatherFetcher

// WeatherService runs weather lookups on behalf of the bot and the API.
// It keeps one provider client per display language and holds no weather data.
type WeatherService struct {
	apiKey        string
	defaultLocale string
	factory       FetcherFactory
	latest        *weather.Latest
	logger        *zerolog.Logger

	mu       sync.Mutex
	fetchers map[string]interfaces.WeatherFetcher
}

func NewWeatherService(cfg *config.WeatherConfig, observer weather.Observer, logger *zerolog.Logger) (*WeatherService, error) {
	zone, err := cfg.Zone()
	if err != nil {
		return nil, fmt.Errorf("invalid weather timezone: %w", err)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = version.GetInfo().UserAgent()
	}

	factory := func(locale weather.Locale) interfaces.WeatherFetcher {
		opts := []weather.Option{
			weather.WithLocale(locale.String()),
			weather.WithZone(zone),
			weather.WithUserAgent(userAgent),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, weather.WithBaseURL(cfg.BaseURL))
		}
		if observer != nil {
			opts = append(opts, weather.WithObserver(observer))
		}
		return weather.NewClient(opts...)
	}

	return NewWeatherServiceWithFactory(cfg.APIKey, cfg.Locale, factory, logger), nil
}

// NewWeatherServiceWithFactory creates a service over custom provider clients
func NewWeatherServiceWithFactory(apiKey, defaultLocale string, factory FetcherFactory, logger *zerolog.Logger) *WeatherService {
	if defaultLocale == "" {
		defaultLocale = weather.DefaultLocale
	}

	return &WeatherService{
		apiKey:        apiKey,
		defaultLocale: defaultLocale,
		factory:       factory,
		latest:        weather.NewLatest(),
		logger:        logger,
		fetchers:      make(map[string]interfaces.WeatherFetcher),
	}
}

// fetcher returns the client for locale, creating it on first use
func (s *WeatherService) fetcher(locale string) (interfaces.WeatherFetcher, weather.Locale) {
	if locale == "" {
		locale = s.defaultLocale
	}
	loc := weather.ParseLocale(locale)
	key := loc.String()

	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.fetchers[key]
	if !ok {
		f = s.factory(loc)
		s.fetchers[key] = f
	}
	return f, loc
}

// Current fetches current weather for q, labelled in locale
func (s *WeatherService) Current(ctx context.Context, q weather.LocationQuery, locale string) (weather.WeatherRecord, error) {
	f, loc := s.fetcher(locale)
	start := time.Now()

	rec, err := f.FetchCurrent(ctx, q, s.apiKey)
	s.logFetch(ctx, weather.EndpointCurrent, q, loc, start, err)
	return rec, err
}

// Forecast fetches the 3-hourly forecast for q, labelled in locale
func (s *WeatherService) Forecast(ctx context.Context, q weather.LocationQuery, locale string) ([]weather.ForecastEntry, error) {
	f, loc := s.fetcher(locale)
	start := time.Now()

	entries, err := f.FetchForecast(ctx, q, s.apiKey)
	s.logFetch(ctx, weather.EndpointForecast, q, loc, start, err)
	return entries, err
}

// Lookup runs the requested parts of one user action concurrently. Starting a
// lookup cancels an unfinished one with the same key, and the older report
// comes back marked Stale.
func (s *WeatherService) Lookup(ctx context.Context, key string, q weather.LocationQuery, locale string, want interfaces.Want) interfaces.WeatherReport {
	runCtx, ticket := s.latest.Begin(ctx, key)

	var (
		current  *weather.Pending[weather.WeatherRecord]
		forecast *weather.Pending[[]weather.ForecastEntry]
	)
	if want.Has(interfaces.WantCurrent) {
		current = weather.Go(runCtx, func(ctx context.Context) (weather.WeatherRecord, error) {
			return s.Current(ctx, q, locale)
		})
	}
	if want.Has(interfaces.WantForecast) {
		forecast = weather.Go(runCtx, func(ctx context.Context) ([]weather.ForecastEntry, error) {
			return s.Forecast(ctx, q, locale)
		})
	}

	var report interfaces.WeatherReport
	if current != nil {
		report.Current, report.CurrentErr = current.Wait(ctx)
	}
	if forecast != nil {
		report.Forecast, report.ForecastErr = forecast.Wait(ctx)
	}

	if !s.latest.Commit(ticket) {
		s.logger.Debug().
			Str("key", key).
			Str("query", q.String()).
			Msg("Dropping stale weather lookup")
		return interfaces.WeatherReport{Stale: true}
	}

	return report
}

func (s *WeatherService) logFetch(ctx context.Context, endpoint weather.Endpoint, q weather.LocationQuery, loc weather.Locale, start time.Time, err error) {
	event := s.logger.Debug()
	if err != nil {
		event = s.logger.Warn().Err(err)
	}

	event.
		Str("request_id", requestID(ctx)).
		Str("endpoint", string(endpoint)).
		Str("query", q.String()).
		Str("locale", loc.String()).
		Str("kind", outcomeKind(err)).
		Dur("duration", time.Since(start)).
		Msg("Weather request completed")
}

type requestIDKey struct{}

// WithRequestID tags ctx with a new request ID unless it already has one
func WithRequestID(ctx context.Context) context.Context {
	if _, ok := ctx.Value(requestIDKey{}).(string); ok {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, uuid.NewString())
}

// RequestID returns the request ID carried by ctx, or ""
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func requestID(ctx context.Context) string {
	if id := RequestID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

func outcomeKind(err error) string {
	if err == nil {
		return "success"
	}
	return weather.Kind(err)
}
