package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/valpere/nalsi/internal/interfaces"
	"github.com/valpere/nalsi/internal/locales"
	"github.com/valpere/nalsi/internal/models"
	"github.com/valpere/nalsi/pkg/weather"
	"github.com/valpere/nalsi/tests/helpers"
)

// staticFetcher answers every request with the Seoul fixture
type staticFetcher struct{}

func (staticFetcher) FetchCurrent(ctx context.Context, q weather.LocationQuery, apiKey string) (weather.WeatherRecord, error) {
	return seoulRecord, nil
}

func (staticFetcher) FetchForecast(ctx context.Context, q weather.LocationQuery, apiKey string) ([]weather.ForecastEntry, error) {
	return make([]weather.ForecastEntry, weather.MaxForecastEntries), nil
}

func newBenchmarkWeatherService() *WeatherService {
	factory := func(weather.Locale) interfaces.WeatherFetcher { return staticFetcher{} }
	return NewWeatherServiceWithFactory("bench-key", "ko-KR", factory, helpers.NewSilentTestLogger())
}

// BenchmarkWeatherService_Current benchmarks a single current-weather lookup
func BenchmarkWeatherService_Current(b *testing.B) {
	service := newBenchmarkWeatherService()
	q := weather.ByName("Seoul")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = service.Current(context.Background(), q, "ko-KR")
	}
}

// BenchmarkWeatherService_Lookup benchmarks the concurrent current plus forecast lookup
func BenchmarkWeatherService_Lookup(b *testing.B) {
	service := newBenchmarkWeatherService()
	q := weather.ByCoords(37.5665, 126.978)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = service.Lookup(context.Background(), "bench", q, "ko-KR", interfaces.WantBoth)
	}
}

// BenchmarkConcurrentLookups benchmarks lookups from many chats at once
func BenchmarkConcurrentLookups(b *testing.B) {
	service := newBenchmarkWeatherService()
	q := weather.ByName("Busan")

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_ = service.Lookup(context.Background(), fmt.Sprintf("chat:%d", i), q, "en-US", interfaces.WantCurrent)
			i++
		}
	})
}

// BenchmarkUserService_GetUser benchmarks user retrieval
func BenchmarkUserService_GetUser(b *testing.B) {
	mockDB := helpers.NewMockDB(b)
	defer mockDB.Close()

	mockDB.Mock.MatchExpectationsInOrder(false)
	service := NewUserService(mockDB.DB, nil, helpers.NewSilentTestLogger())
	user := helpers.MockUser(123)

	for i := 0; i < b.N; i++ {
		mockDB.Mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "language", "city"}).AddRow(user.ID, user.Language, user.City))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = service.GetUser(context.Background(), 123)
	}
}

// BenchmarkLocalizationService_T benchmarks translation with formatting
func BenchmarkLocalizationService_T(b *testing.B) {
	ls := NewLocalizationService(helpers.NewSilentTestLogger())
	if err := ls.LoadTranslations(locales.LocalesFS); err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ls.T(ctx, "ko-KR", "weather_title", "☀️", "Seoul", "KR")
	}
}

// BenchmarkLocalizationService_ResolveLanguage benchmarks tag matching
func BenchmarkLocalizationService_ResolveLanguage(b *testing.B) {
	ls := NewLocalizationService(helpers.NewSilentTestLogger())
	if err := ls.LoadTranslations(locales.LocalesFS); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ls.ResolveLanguage("uk")
	}
}

// BenchmarkUser_SavedQuery benchmarks the saved location lookup on the model
func BenchmarkUser_SavedQuery(b *testing.B) {
	user := &models.User{ID: 1, HasCoords: true, Latitude: 37.5665, Longitude: 126.978}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = user.SavedQuery()
	}
}
