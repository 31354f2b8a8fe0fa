package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserAuth is the credential record stored in the users table.
type UserAuth struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	Name      string    `json:"name,omitempty"`
	Surname   string    `json:"surname,omitempty"`
	Age       int       `json:"age,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchRecord is one persisted (query, response) audit row. Insertion order
// of IDs is the recency ordering for the recents page.
type SearchRecord struct {
	ID        int64     `json:"id"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// WeatherReading is the normalized view of an OpenWeather current-weather
// response. Rain figures are nil when the upstream payload has no rain key.
type WeatherReading struct {
	TemperatureCelsius float64  `json:"temperature_celsius"`
	Description        string   `json:"description"`
	RainLastHourMm     *float64 `json:"rain_last_hour_mm,omitempty"`
	RainLast3HourMm    *float64 `json:"rain_last_3_hour_mm,omitempty"`
}

// NearbyPlace is one result from the places nearby search.
type NearbyPlace struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Rating  float64 `json:"rating"`
}

// Coordinates is a geocoded location.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Claims carried inside the auth token cookie.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}
