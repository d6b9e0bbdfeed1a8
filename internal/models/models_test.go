package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/valpere/nalsi/pkg/weather"
)

func TestUser_GetDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		user     User
		expected string
	}{
		{
			name: "full name with both first and last name",
			user: User{
				FirstName: "Min-jun",
				LastName:  "Kim",
				Username:  "minjun",
			},
			expected: "Min-jun Kim",
		},
		{
			name: "only first name",
			user: User{
				FirstName: "Min-jun",
				Username:  "minjun",
			},
			expected: "Min-jun",
		},
		{
			name: "only username when no names",
			user: User{
				Username: "minjun",
			},
			expected: "@minjun",
		},
		{
			name: "fallback to user ID when no names or username",
			user: User{
				ID: 12345,
			},
			expected: "User_12345",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.GetDisplayName())
		})
	}
}

func TestUser_SavedQuery(t *testing.T) {
	tests := []struct {
		name   string
		user   User
		want   weather.LocationQuery
		wantOK bool
	}{
		{
			name:   "nothing saved",
			user:   User{ID: 1},
			wantOK: false,
		},
		{
			name:   "blank city is not a location",
			user:   User{ID: 1, City: "   "},
			wantOK: false,
		},
		{
			name:   "city",
			user:   User{ID: 1, City: "Busan"},
			want:   weather.ByName("Busan"),
			wantOK: true,
		},
		{
			name:   "coordinates win over city",
			user:   User{ID: 1, City: "Busan", Latitude: 37.5665, Longitude: 126.978, HasCoords: true},
			want:   weather.ByCoords(37.5665, 126.978),
			wantOK: true,
		},
		{
			name:   "equator and prime meridian are a valid location",
			user:   User{ID: 1, HasCoords: true},
			want:   weather.ByCoords(0, 0),
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, ok := tt.user.SavedQuery()

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantOK, tt.user.HasSavedLocation())
			assert.Equal(t, tt.want, q)
		})
	}
}

func TestUser_Validate(t *testing.T) {
	assert.NoError(t, (&User{ID: 1}).Validate())
	assert.NoError(t, (&User{ID: 1, HasCoords: true, Latitude: -90, Longitude: 180}).Validate())
	assert.Error(t, (&User{}).Validate())

	err := (&User{ID: 1, HasCoords: true, Latitude: 95}).Validate()
	assert.Equal(t, weather.KindInput, weather.Kind(err))
}
