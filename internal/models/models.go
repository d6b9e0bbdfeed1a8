package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a Telegram user and the preferences the bot stores for them.
// Weather results are never stored.
type User struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Username  string `gorm:"index" json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Language  string `gorm:"size:16" json:"language"`

	// Default location; coordinates win over City when HasCoords is set
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	HasCoords bool    `json:"has_coords"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Migrate runs database migrations
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{})
}
