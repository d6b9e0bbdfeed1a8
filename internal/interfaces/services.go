package interfaces

import (
	"context"

	"github.com/PaulSonOfLars/gotgbot/v2"

	"github.com/valpere/nalsi/internal/models"
	"github.com/valpere/nalsi/pkg/weather"
)

//go:generate mockgen -source=services.go -destination=../../tests/mocks/services_mock.go -package=mocks

// Want selects which parts of a weather report to fetch
type Want int

const (
	WantCurrent Want = 1 << iota
	WantForecast

	WantBoth = WantCurrent | WantForecast
)

// Has reports whether part is requested
func (w Want) Has(part Want) bool {
	return w&part != 0
}

// WeatherReport is the outcome of one user action. Each part carries its own
// error so a failed forecast never hides a good current reading.
type WeatherReport struct {
	Current     weather.WeatherRecord
	CurrentErr  error
	Forecast    []weather.ForecastEntry
	ForecastErr error

	// Stale is set when a newer lookup for the same key started before this
	// one finished; the caller must drop the report.
	Stale bool
}

// WeatherServiceInterface defines the interface for weather service operations
type WeatherServiceInterface interface {
	Current(ctx context.Context, q weather.LocationQuery, locale string) (weather.WeatherRecord, error)
	Forecast(ctx context.Context, q weather.LocationQuery, locale string) ([]weather.ForecastEntry, error)
	Lookup(ctx context.Context, key string, q weather.LocationQuery, locale string, want Want) WeatherReport
}

// UserServiceInterface defines the interface for user preference operations
type UserServiceInterface interface {
	RegisterUser(ctx context.Context, tgUser *gotgbot.User, language string) error
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	SetCity(ctx context.Context, userID int64, city string) error
	SetCoordinates(ctx context.Context, userID int64, lat, lon float64, cityName string) error
	SetLanguage(ctx context.Context, userID int64, language string) error
	GetLanguage(ctx context.Context, userID int64, fallback string) string
	SavedQuery(ctx context.Context, userID int64) (weather.LocationQuery, bool, error)
}

// LocalizationServiceInterface defines the interface for localization service operations
type LocalizationServiceInterface interface {
	T(ctx context.Context, language, key string, args ...any) string
	ResolveLanguage(tag string) string
	DetectLanguageFromName(name string) (string, bool)
	SupportedCodes() []string
	IsLanguageSupported(language string) bool
	LanguageLabel(code string) string
}
