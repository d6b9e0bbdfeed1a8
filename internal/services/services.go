// Package services provides the business logic layer for the Nalsi bot.
// Each service encapsulates one concern and receives its dependencies
// through its constructor.
package services

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/valpere/nalsi/internal/config"
	"github.com/valpere/nalsi/pkg/metrics"
	"github.com/valpere/nalsi/pkg/weather"
)

// Services is the central container for all business logic services.
//
// Usage:
//
//	svcs, err := services.New(db, cfg, logger, metrics)
//
//	lang := svcs.User.GetLanguage(ctx, userID, "en-US")
//	rec, err := svcs.Weather.Current(ctx, weather.ByName("Seoul"), lang)
type Services struct {
	User         *UserService         // Saved city, coordinates and language per user
	Weather      *WeatherService      // Current weather and forecast lookups
	Localization *LocalizationService // Multi-language translation support
	startTime    time.Time
}

// New creates a new Services container with all dependencies initialized.
// metricsCollector may be nil, in which case provider requests are not observed.
func New(db *gorm.DB, cfg *config.Config, logger *zerolog.Logger, metricsCollector *metrics.Metrics) (*Services, error) {
	var observer weather.Observer
	if metricsCollector != nil {
		observer = metricsCollector
	}

	weatherService, err := NewWeatherService(&cfg.Weather, observer, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create weather service: %w", err)
	}

	return &Services{
		User:         NewUserService(db, metricsCollector, logger),
		Weather:      weatherService,
		Localization: NewLocalizationService(logger),
		startTime:    time.Now(),
	}, nil
}

// Uptime returns how long the container has existed
func (s *Services) Uptime() time.Duration {
	return time.Since(s.startTime)
}
