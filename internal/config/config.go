package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds everything the server reads from the environment at startup.
type Config struct {
	Port              string
	Environment       string
	MongoURI          string
	MongoDB           string
	AllowedOrigins    []string
	RetentionSchedule string
}

// Load reads configuration from environment variables. MONGO_URI is the only
// required value; everything else has a sensible default.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		MongoURI:          os.Getenv("MONGO_URI"),
		MongoDB:           getEnv("MONGO_DB", "reservas_db"),
		AllowedOrigins:    strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ","),
		RetentionSchedule: getEnv("CANCELLATION_RETENTION_SCHEDULE", "0 3 * * *"),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI not set")
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
