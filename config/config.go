package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string

	// CSV export paths. Transcripts is optional.
	PresencePath    string
	ItemsPath       string
	ShiftsPath      string
	TranscriptsPath string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Port:            getEnv("PORT", "8080"),
		AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ","),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		PresencePath:    getEnv("PRESENCE_CSV", "report_presence.csv"),
		ItemsPath:       getEnv("ITEMS_CSV", "report_items.csv"),
		ShiftsPath:      getEnv("SHIFTS_CSV", "shifts.csv"),
		TranscriptsPath: getEnv("TRANSCRIPTS_CSV", ""),
	}

	for i, origin := range config.AllowedOrigins {
		config.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	return config, nil
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
