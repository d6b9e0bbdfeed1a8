package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/valpere/nalsi/pkg/weather"
)

// GetDisplayName returns the user's display name
func (u *User) GetDisplayName() string {
	if u.FirstName != "" {
		if u.LastName != "" {
			return u.FirstName + " " + u.LastName
		}
		return u.FirstName
	}
	if u.Username != "" {
		return "@" + u.Username
	}
	return fmt.Sprintf("User_%d", u.ID)
}

// HasSavedLocation reports whether the user saved a city or shared a location
func (u *User) HasSavedLocation() bool {
	return u.HasCoords || strings.TrimSpace(u.City) != ""
}

// SavedQuery returns the query for the user's default location
func (u *User) SavedQuery() (weather.LocationQuery, bool) {
	if !u.HasSavedLocation() {
		return weather.LocationQuery{}, false
	}
	if u.HasCoords {
		return weather.ByCoords(u.Latitude, u.Longitude), true
	}
	return weather.ByName(u.City), true
}

// Validate validates user data
func (u *User) Validate() error {
	if u.ID == 0 {
		return errors.New("user ID is required")
	}
	if u.HasCoords {
		if err := weather.ByCoords(u.Latitude, u.Longitude).Validate(); err != nil {
			return err
		}
	}
	return nil
}
