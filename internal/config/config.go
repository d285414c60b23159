package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the application.
type Config struct {
	// Port is the HTTP server port.
	Port int

	// DatabaseURL selects the storage backend: sqlite://<path> or
	// postgres://<dsn>.
	DatabaseURL string

	// CORSOrigin is the allowed browser origin.
	CORSOrigin string

	// JWTSecret signs bearer tokens. The service refuses to start
	// without it.
	JWTSecret string

	// AssistantAPIURL is the generative-language endpoint. Empty selects
	// the hosted default.
	AssistantAPIURL string

	// AssistantAPIKey authenticates assistant calls.
	AssistantAPIKey string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	port := 8080
	if p := os.Getenv("PORT"); p != "" {
		var err error
		port, err = strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = "sqlite://blogwise.db"
	}

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "*"
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		Port:            port,
		DatabaseURL:     dbURL,
		CORSOrigin:      corsOrigin,
		JWTSecret:       secret,
		AssistantAPIURL: os.Getenv("ASSISTANT_API_URL"),
		AssistantAPIKey: os.Getenv("ASSISTANT_API_KEY"),
	}, nil
}
