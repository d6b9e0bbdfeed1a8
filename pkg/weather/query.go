package weather

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

type queryKind int

const (
	queryByName queryKind = iota + 1
	queryByCoords
)

// LocationQuery selects a location either by city name or by coordinates.
// The zero value is invalid; build one with ByName or ByCoords.
type LocationQuery struct {
	kind queryKind
	city string
	lat  float64
	lon  float64
}

// ByName selects a location by city name
func ByName(city string) LocationQuery {
	return LocationQuery{kind: queryByName, city: strings.TrimSpace(city)}
}

// ByCoords selects a location by latitude and longitude
func ByCoords(lat, lon float64) LocationQuery {
	return LocationQuery{kind: queryByCoords, lat: lat, lon: lon}
}

// IsCoords reports whether the query selects by coordinates
func (q LocationQuery) IsCoords() bool {
	return q.kind == queryByCoords
}

// City returns the city name of a by-name query
func (q LocationQuery) City() string {
	return q.city
}

// Coords returns the coordinates of a by-coordinates query
func (q LocationQuery) Coords() (lat, lon float64) {
	return q.lat, q.lon
}

// Validate checks the query against the provider's input constraints
func (q LocationQuery) Validate() error {
	switch q.kind {
	case queryByName:
		if q.city == "" {
			return &InputError{Field: "city", Reason: "must not be empty"}
		}
	case queryByCoords:
		if math.IsNaN(q.lat) || q.lat < -90 || q.lat > 90 {
			return &InputError{Field: "lat", Reason: fmt.Sprintf("%v is outside [-90, 90]", q.lat)}
		}
		if math.IsNaN(q.lon) || q.lon < -180 || q.lon > 180 {
			return &InputError{Field: "lon", Reason: fmt.Sprintf("%v is outside [-180, 180]", q.lon)}
		}
	default:
		return &InputError{Field: "location", Reason: "no city or coordinates given"}
	}
	return nil
}

// apply adds the location selector to v
func (q LocationQuery) apply(v url.Values) {
	if q.kind == queryByCoords {
		v.Set("lat", strconv.FormatFloat(q.lat, 'f', -1, 64))
		v.Set("lon", strconv.FormatFloat(q.lon, 'f', -1, 64))
		return
	}
	v.Set("q", q.city)
}

func (q LocationQuery) String() string {
	switch q.kind {
	case queryByName:
		return q.city
	case queryByCoords:
		return fmt.Sprintf("%.4f,%.4f", q.lat, q.lon)
	default:
		return ""
	}
}
