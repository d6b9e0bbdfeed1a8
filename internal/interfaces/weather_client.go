package interfaces

import (
	"context"

	"github.com/valpere/nalsi/pkg/weather"
)

//go:generate mockgen -source=weather_client.go -destination=../../tests/mocks/weather_client_mock.go -package=mocks

// WeatherFetcher defines the provider calls a weather service needs.
// *weather.Client implements it.
type WeatherFetcher interface {
	FetchCurrent(ctx context.Context, q weather.LocationQuery, apiKey string) (weather.WeatherRecord, error)
	FetchForecast(ctx context.Context, q weather.LocationQuery, apiKey string) ([]weather.ForecastEntry, error)
}
