package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort        int
	DatabasePath      string
	ServerSecret      string // Keyed-hash secret, required
	SessionCookieName string
	AppEnv            string
}

// Load loads configuration from environment variables or sets defaults.
// A missing SERVER_SECRET is a fatal configuration error: every password
// hash and session token is derived from it.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("SERVER_SECRET")
	if secret == "" {
		return nil, errors.New("SERVER_SECRET must be set")
	}

	return &Config{
		ServerPort:        port,
		DatabasePath:      getEnv("DATABASE_PATH", "./accounts.db"),
		ServerSecret:      secret,
		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "session"),
		AppEnv:            getEnv("APP_ENV", "development"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
