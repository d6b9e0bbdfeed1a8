package weather

import (
	"encoding/json"
	"time"
)

type encodedCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type encodedCurrent struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Weather []encodedCondition `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
		Country string `json:"country"`
	} `json:"sys"`
	Name string `json:"name"`
}

// EncodeCurrent writes rec as a provider-shaped current-weather document.
// Sunrise and sunset are placed on day's calendar date in the parser's zone,
// so ParseCurrent on the same parser gives rec back.
func (p *Parser) EncodeCurrent(rec WeatherRecord, day time.Time) ([]byte, error) {
	sunrise, err := p.epochOn(day, rec.Sunrise, "sunrise")
	if err != nil {
		return nil, err
	}
	sunset, err := p.epochOn(day, rec.Sunset, "sunset")
	if err != nil {
		return nil, err
	}

	var doc encodedCurrent
	doc.Main.Temp = rec.Temperature
	doc.Main.FeelsLike = rec.FeelsLike
	doc.Main.Humidity = rec.Humidity
	doc.Main.Pressure = rec.Pressure
	doc.Weather = []encodedCondition{{Description: rec.Description, Icon: rec.Icon}}
	doc.Wind.Speed = rec.WindSpeed
	doc.Sys.Sunrise = sunrise
	doc.Sys.Sunset = sunset
	doc.Sys.Country = rec.Country
	doc.Name = rec.CityName

	return json.Marshal(doc)
}

func (p *Parser) epochOn(day time.Time, label, field string) (int64, error) {
	clock, err := time.Parse("15:04", label)
	if err != nil {
		return 0, &InputError{Field: field, Reason: errBadLayout.Error()}
	}

	d := day.In(p.zone)
	at := time.Date(d.Year(), d.Month(), d.Day(), clock.Hour(), clock.Minute(), 0, 0, p.zone)
	return at.Unix(), nil
}
