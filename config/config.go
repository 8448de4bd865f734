package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the console needs to run. All of it comes from
// environment variables (optionally via a .env file).
type Config struct {
	Port          string
	GinMode       string
	LogLevel      string
	SessionSecret string
	DBPath        string

	// Backend cost-estimation API
	BackendURL     string
	RequestTimeout int // seconds
	RefDataTTL     int // seconds, cache for machines/operation types

	// Seeded operator account
	AdminUser     string
	AdminPassword string
}

// Load reads configuration from the environment, falling back to defaults
// suitable for local development. BACKEND_URL is the only required value.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		SessionSecret: getEnv("SESSION_SECRET", "change-me"),
		DBPath:        getEnv("DB_PATH", "./cost_console.db"),

		BackendURL:     ensureScheme(getEnv("BACKEND_URL", "http://localhost:8000")),
		RequestTimeout: getEnvInt("REQUEST_TIMEOUT", 30),
		RefDataTTL:     getEnvInt("REFDATA_CACHE_TTL", 30),

		AdminUser:     getEnv("ADMIN_USER", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),
	}

	if _, err := url.Parse(cfg.BackendURL); err != nil {
		return nil, fmt.Errorf("invalid BACKEND_URL %q: %w", cfg.BackendURL, err)
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %d", cfg.RequestTimeout)
	}
	if cfg.RefDataTTL < 0 {
		return nil, fmt.Errorf("REFDATA_CACHE_TTL must not be negative, got %d", cfg.RefDataTTL)
	}

	return cfg, nil
}

func ensureScheme(raw string) string {
	if raw == "" || strings.Contains(raw, "://") {
		return strings.TrimRight(raw, "/")
	}
	return "http://" + strings.TrimRight(raw, "/")
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}
