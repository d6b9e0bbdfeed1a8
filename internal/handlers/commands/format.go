package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/valpere/nalsi/internal/interfaces"
	"github.com/valpere/nalsi/pkg/weather"
)

// FormatCurrent renders a current-weather record as a chat message.
// Temperatures are shown as whole degrees, truncated toward zero.
func FormatCurrent(ctx context.Context, tr interfaces.LocalizationServiceInterface, lang string, rec weather.WeatherRecord) string {
	var b strings.Builder

	b.WriteString(tr.T(ctx, lang, "weather_title", rec.Condition().Emoji(), rec.CityName, rec.Country))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d°C  %s\n", int(rec.Temperature), rec.Description)
	b.WriteString(tr.T(ctx, lang, "weather_feels_like", int(rec.FeelsLike)))
	b.WriteString("\n\n")

	b.WriteString(tr.T(ctx, lang, "weather_details"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s: %d%%\n", tr.T(ctx, lang, "weather_humidity"), rec.Humidity)
	fmt.Fprintf(&b, "%s: %d hPa\n", tr.T(ctx, lang, "weather_pressure"), rec.Pressure)
	fmt.Fprintf(&b, "%s: %.1f m/s\n", tr.T(ctx, lang, "weather_wind"), rec.WindSpeed)
	fmt.Fprintf(&b, "%s: %s\n", tr.T(ctx, lang, "weather_sunrise"), rec.Sunrise)
	fmt.Fprintf(&b, "%s: %s", tr.T(ctx, lang, "weather_sunset"), rec.Sunset)

	return b.String()
}

// FormatForecast renders forecast entries grouped under their date labels,
// keeping response order
func FormatForecast(ctx context.Context, tr interfaces.LocalizationServiceInterface, lang, place string, entries []weather.ForecastEntry) string {
	var b strings.Builder

	b.WriteString(tr.T(ctx, lang, "forecast_title", place))

	date := ""
	for i, e := range entries {
		if i == 0 || e.Date != date {
			date = e.Date
			fmt.Fprintf(&b, "\n\n📅 %s", date)
		}
		fmt.Fprintf(&b, "\n%s %s %d°C %s", e.Time, e.Condition().Emoji(), int(e.Temperature), e.Description)
	}

	return b.String()
}

// ErrorText maps a lookup error to a localized message. fallbackKey names the
// message used for transport failures, e.g. "error_weather".
func ErrorText(ctx context.Context, tr interfaces.LocalizationServiceInterface, lang string, err error, fallbackKey string, q weather.LocationQuery) string {
	switch weather.Kind(err) {
	case weather.KindInput:
		var inputErr *weather.InputError
		if errors.As(err, &inputErr) && (inputErr.Field == "lat" || inputErr.Field == "lon") {
			return tr.T(ctx, lang, "error_input_coords")
		}
		return tr.T(ctx, lang, "error_input_city")
	case weather.KindParse:
		return tr.T(ctx, lang, "error_parse")
	case weather.KindFetch:
		var fetchErr *weather.FetchError
		if errors.As(err, &fetchErr) && fetchErr.StatusCode == 404 {
			return tr.T(ctx, lang, "error_not_found", q.String())
		}
		return tr.T(ctx, lang, fallbackKey, fetchDetail(fetchErr))
	default:
		return tr.T(ctx, lang, "error_internal")
	}
}

// fetchDetail names a transport failure without exposing the request or its cause text
func fetchDetail(err *weather.FetchError) string {
	switch {
	case err == nil:
		return "network error"
	case err.StatusCode != 0:
		return fmt.Sprintf("HTTP %d", err.StatusCode)
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return "network error"
	}
}
