// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// JWTSecret signs and verifies auth tokens (HS256). Required.
	JWTSecret string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to the React dev servers the frontend runs on.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// LocationsCSV is the path to the Country,City reference data file.
	// Defaults to "data/locations.csv".
	LocationsCSV string

	// EnforceBudget enables the manager-approval budget check: when true,
	// approving a request whose selected quote total exceeds the project
	// budget is rejected. Defaults to false (decision is left to the manager).
	EnforceBudget bool

	// SeedDemoUsers controls whether the three demo accounts are created on
	// first boot when absent. Defaults to true.
	SeedDemoUsers bool
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory is loaded first if present (local
// dev convenience; real environments set variables directly).
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		LocationsCSV:  getEnv("LOCATIONS_CSV", "data/locations.csv"),
		EnforceBudget: getEnv("BUDGET_ENFORCE", "false") == "true",
		SeedDemoUsers: getEnv("SEED_DEMO_USERS", "true") == "true",
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
