package weather

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Parser maps provider JSON documents onto WeatherRecord and ForecastEntry.
// Time labels are rendered in the parser's zone, not in a zone taken from
// the response.
type Parser struct {
	zone   *time.Location
	locale Locale
}

// NewParser creates a parser rendering labels in zone with the given locale.
// A nil zone means time.Local.
func NewParser(locale Locale, zone *time.Location) *Parser {
	if zone == nil {
		zone = time.Local
	}
	return &Parser{zone: zone, locale: locale}
}

var defaultParser = NewParser(ParseLocale(DefaultLocale), nil)

// ParseCurrent parses a current-weather document with the default locale and time.Local
func ParseCurrent(body []byte) (WeatherRecord, error) {
	return defaultParser.ParseCurrent(body)
}

// ParseForecast parses a forecast document with the default locale and time.Local
func ParseForecast(body []byte) ([]ForecastEntry, error) {
	return defaultParser.ParseForecast(body)
}

// Zone returns the time zone labels are rendered in
func (p *Parser) Zone() *time.Location {
	return p.zone
}

type conditionPayload struct {
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

type currentPayload struct {
	Main *struct {
		Temp      *float64         `json:"temp"`
		FeelsLike *float64         `json:"feels_like"`
		Humidity  *json.RawMessage `json:"humidity"`
		Pressure  *json.RawMessage `json:"pressure"`
	} `json:"main"`
	Weather []conditionPayload `json:"weather"`
	Wind    *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Sys *struct {
		Sunrise *json.RawMessage `json:"sunrise"`
		Sunset  *json.RawMessage `json:"sunset"`
		Country *string          `json:"country"`
	} `json:"sys"`
	Name *string `json:"name"`
}

type forecastPayload struct {
	List *[]json.RawMessage `json:"list"`
}

type forecastItemPayload struct {
	Dt   *json.RawMessage `json:"dt"`
	Main *struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Weather []conditionPayload `json:"weather"`
}

// ParseCurrent maps a current-weather document onto a WeatherRecord.
// Every required field must be present with the right type; nothing is defaulted.
func (p *Parser) ParseCurrent(body []byte) (WeatherRecord, error) {
	var payload currentPayload
	if err := decode(body, &payload, ""); err != nil {
		return WeatherRecord{}, err
	}

	if payload.Main == nil {
		return WeatherRecord{}, missing("main")
	}
	if payload.Main.Temp == nil {
		return WeatherRecord{}, missing("main.temp")
	}
	if payload.Main.FeelsLike == nil {
		return WeatherRecord{}, missing("main.feels_like")
	}
	humidity, err := intField(payload.Main.Humidity, "main.humidity")
	if err != nil {
		return WeatherRecord{}, err
	}
	pressure, err := intField(payload.Main.Pressure, "main.pressure")
	if err != nil {
		return WeatherRecord{}, err
	}

	description, icon, err := firstCondition(payload.Weather, "weather")
	if err != nil {
		return WeatherRecord{}, err
	}

	if payload.Wind == nil {
		return WeatherRecord{}, missing("wind")
	}
	if payload.Wind.Speed == nil {
		return WeatherRecord{}, missing("wind.speed")
	}

	if payload.Sys == nil {
		return WeatherRecord{}, missing("sys")
	}
	sunrise, err := intField(payload.Sys.Sunrise, "sys.sunrise")
	if err != nil {
		return WeatherRecord{}, err
	}
	sunset, err := intField(payload.Sys.Sunset, "sys.sunset")
	if err != nil {
		return WeatherRecord{}, err
	}
	if payload.Sys.Country == nil {
		return WeatherRecord{}, missing("sys.country")
	}

	if payload.Name == nil {
		return WeatherRecord{}, missing("name")
	}

	return WeatherRecord{
		Temperature: *payload.Main.Temp,
		FeelsLike:   *payload.Main.FeelsLike,
		Humidity:    int(humidity),
		Pressure:    int(pressure),
		Description: description,
		Icon:        icon,
		WindSpeed:   *payload.Wind.Speed,
		CityName:    *payload.Name,
		Country:     *payload.Sys.Country,
		Sunrise:     TimeLabel(p.unix(sunrise)),
		Sunset:      TimeLabel(p.unix(sunset)),
	}, nil
}

// ParseForecast maps a 5-day/3-hour forecast document onto at most
// MaxForecastEntries entries in response order. An empty list yields an
// empty slice; a single malformed entry fails the whole parse.
func (p *Parser) ParseForecast(body []byte) ([]ForecastEntry, error) {
	var payload forecastPayload
	if err := decode(body, &payload, ""); err != nil {
		return nil, err
	}
	if payload.List == nil {
		return nil, missing("list")
	}

	items := *payload.List
	n := min(len(items), MaxForecastEntries)
	entries := make([]ForecastEntry, 0, n)

	for i := 0; i < n; i++ {
		prefix := fmt.Sprintf("list[%d]", i)

		var item forecastItemPayload
		if err := decode(items[i], &item, prefix); err != nil {
			return nil, err
		}

		dt, err := intField(item.Dt, prefix+".dt")
		if err != nil {
			return nil, err
		}
		if item.Main == nil {
			return nil, missing(prefix + ".main")
		}
		if item.Main.Temp == nil {
			return nil, missing(prefix + ".main.temp")
		}
		description, icon, err := firstCondition(item.Weather, prefix+".weather")
		if err != nil {
			return nil, err
		}

		at := p.unix(dt)
		entries = append(entries, ForecastEntry{
			Date:        p.locale.DateLabel(at),
			Time:        TimeLabel(at),
			Temperature: *item.Main.Temp,
			Description: description,
			Icon:        icon,
		})
	}

	return entries, nil
}

func (p *Parser) unix(sec int64) time.Time {
	return time.Unix(sec, 0).In(p.zone)
}

// decode unmarshals data into v, turning decoder failures into ParseErrors
func decode(data []byte, v any, prefix string) error {
	if err := json.Unmarshal(data, v); err != nil {
		field := prefix
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field = joinField(prefix, typeErr.Field)
			if field == "" {
				field = "body"
			}
		}
		return &ParseError{Field: field, Cause: err}
	}
	return nil
}

func joinField(prefix, field string) string {
	switch {
	case prefix == "":
		return field
	case field == "":
		return prefix
	default:
		return prefix + "." + field
	}
}

func missing(field string) error {
	return &ParseError{Field: field, Cause: errMissing}
}

// firstCondition returns description and icon of the first weather element
func firstCondition(conditions []conditionPayload, field string) (string, string, error) {
	if conditions == nil {
		return "", "", missing(field)
	}
	if len(conditions) == 0 {
		return "", "", &ParseError{Field: field, Cause: errEmpty}
	}

	first := conditions[0]
	if first.Description == nil {
		return "", "", missing(field + "[0].description")
	}
	if first.Icon == nil {
		return "", "", missing(field + "[0].icon")
	}
	return *first.Description, *first.Icon, nil
}

// intField accepts integral JSON numbers, including ones written as 1013.0.
// Quoted numbers are rejected.
func intField(raw *json.RawMessage, field string) (int64, error) {
	if raw == nil {
		return 0, missing(field)
	}
	text := string(*raw)
	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return v, nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, &ParseError{Field: field, Cause: fmt.Errorf("%w, got %s", errNotInt, text)}
	}
	return int64(f), nil
}
