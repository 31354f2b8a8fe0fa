package config

import (
	"fmt"
	"os"
	"time"
)

type PostgresConfig struct {
	Host     string
	Port     string
	DB       string
	Username string
	Password string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type JWTConfig struct {
	SecretKey  string
	TokenTTL   time.Duration
	Issuer     string
	SessionTTL time.Duration
}

// APIKeys holds the external service credentials. Every key is required at
// process start; a missing key is a startup error, not a disabled feature.
type APIKeys struct {
	Gemini      string
	GoogleMaps  string
	OpenWeather string
}

type Config struct {
	Postgres   PostgresConfig
	JWT        JWTConfig
	Keys       APIKeys
	ServerPort string
}

func Load() (*Config, error) {
	cfg := &Config{
		Postgres: PostgresConfig{
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
			DB:       getEnvOrDefault("POSTGRES_DB", "wayfarer"),
			Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", ""),
			SSLMode:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
			MaxConns: 30,
			MinConns: 5,
		},
		JWT: JWTConfig{
			SecretKey:  getEnvOrDefault("JWT_SECRET_KEY", ""),
			TokenTTL:   getDurationOrDefault("JWT_TOKEN_TTL", 24*time.Hour),
			Issuer:     getEnvOrDefault("JWT_ISSUER", "Wayfarer"),
			SessionTTL: getDurationOrDefault("SESSION_TTL", 8*time.Hour),
		},
		Keys: APIKeys{
			Gemini:      os.Getenv("GEMINI_API_KEY"),
			GoogleMaps:  os.Getenv("GOOGLE_MAPS_API_KEY"),
			OpenWeather: os.Getenv("OPENWEATHER_API_KEY"),
		},
		ServerPort: getEnvOrDefault("SERVER_PORT", "8091"),
	}

	if cfg.Postgres.Password == "" {
		return nil, fmt.Errorf("POSTGRES_PASSWORD environment variable is required")
	}
	if cfg.JWT.SecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is required")
	}
	if cfg.Keys.Gemini == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	if cfg.Keys.GoogleMaps == "" {
		return nil, fmt.Errorf("GOOGLE_MAPS_API_KEY environment variable is required")
	}
	if cfg.Keys.OpenWeather == "" {
		return nil, fmt.Errorf("OPENWEATHER_API_KEY environment variable is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
