package weather

// WeatherRecord is one snapshot of current conditions.
//
// A record is only ever produced by a successful parse with every field set,
// and it is passed around by value so the caller's copy cannot be changed
// behind its back.
type WeatherRecord struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Pressure    int     `json:"pressure"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	WindSpeed   float64 `json:"wind_speed"`
	CityName    string  `json:"city_name"`
	Country     string  `json:"country"`
	Sunrise     string  `json:"sunrise"`
	Sunset      string  `json:"sunset"`
}

// ForecastEntry is one 3-hour forecast sample
type ForecastEntry struct {
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// MaxForecastEntries caps a forecast at five days of 3-hour samples
const MaxForecastEntries = 40

// Condition is the sky condition category encoded in an icon code
type Condition int

const (
	ConditionUnknown Condition = iota
	ConditionClear
	ConditionPartlyCloudy
	ConditionOvercast
	ConditionRain
	ConditionThunderstorm
	ConditionSnow
	ConditionMist
)

// ConditionFromIcon maps a provider icon code such as "10d" to its category
func ConditionFromIcon(icon string) Condition {
	if len(icon) < 2 {
		return ConditionUnknown
	}

	switch icon[:2] {
	case "01":
		return ConditionClear
	case "02", "03":
		return ConditionPartlyCloudy
	case "04":
		return ConditionOvercast
	case "09", "10":
		return ConditionRain
	case "11":
		return ConditionThunderstorm
	case "13":
		return ConditionSnow
	case "50":
		return ConditionMist
	default:
		return ConditionUnknown
	}
}

// Condition returns the sky category of the record
func (r WeatherRecord) Condition() Condition {
	return ConditionFromIcon(r.Icon)
}

// Condition returns the sky category of the entry
func (e ForecastEntry) Condition() Condition {
	return ConditionFromIcon(e.Icon)
}

// Emoji returns a display glyph for the category
func (c Condition) Emoji() string {
	switch c {
	case ConditionClear:
		return "☀️"
	case ConditionPartlyCloudy:
		return "⛅"
	case ConditionOvercast:
		return "☁️"
	case ConditionRain:
		return "🌧️"
	case ConditionThunderstorm:
		return "⛈️"
	case ConditionSnow:
		return "❄️"
	case ConditionMist:
		return "🌫️"
	default:
		return "🌡️"
	}
}

func (c Condition) String() string {
	switch c {
	case ConditionClear:
		return "clear"
	case ConditionPartlyCloudy:
		return "partly_cloudy"
	case ConditionOvercast:
		return "overcast"
	case ConditionRain:
		return "rain"
	case ConditionThunderstorm:
		return "thunderstorm"
	case ConditionSnow:
		return "snow"
	case ConditionMist:
		return "mist"
	default:
		return "unknown"
	}
}
