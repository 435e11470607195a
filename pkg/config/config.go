package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every tunable the engine and gateway need, resolved
// once at startup. Components never read the environment themselves.
type Config struct {
	PostgresURL      string
	Port             string
	FoursquareAPIKey string
	JWTSecret        string

	RadiusMeters    int
	ResultLimit     int
	MinResults      int
	ProviderTimeout time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		PostgresURL:      getEnv("POSTGRES_URL", ""),
		Port:             getEnv("PORT", "8080"),
		FoursquareAPIKey: getEnv("FOURSQUARE_API_KEY", ""),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		RadiusMeters:     getEnvAsInt("VENUE_RADIUS_METERS", 1000),
		ResultLimit:      getEnvAsInt("VENUE_RESULT_LIMIT", 10),
		MinResults:       getEnvAsInt("VENUE_MIN_RESULTS", 5),
		ProviderTimeout:  time.Duration(getEnvAsInt("PROVIDER_TIMEOUT_SECONDS", 15)) * time.Second,
	}

	if cfg.PostgresURL == "" {
		log.Fatal("POSTGRES_URL environment variable is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}

	return cfg
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
