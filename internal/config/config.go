package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	MigrationsPath    string
	StoragePath       string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	// Scheduling policy knobs. Defaults follow the booking rules the
	// platform launched with; see the booking package for how they apply.
	BookingHorizonDays int
	BookingHourStart   int
	BookingHourEnd     int
	CancelCutoff       time.Duration
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// Goose migration directory
	cfg.MigrationsPath = getEnv("MIGRATIONS_PATH", "migrations")

	// Base directory for uploaded demo media
	cfg.StoragePath = getEnv("STORAGE_PATH", "data/uploads")

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	ttlStr := getEnv("JWT_ACCESS_TOKEN_TTL", "15m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.JWTAccessTokenTTL = ttl

	// Bcrypt cost for password hashing (default: 12)
	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	// How far ahead a session may be booked (default: 90 days)
	cfg.BookingHorizonDays, err = getEnvAsInt("BOOKING_HORIZON_DAYS", 90)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_HORIZON_DAYS: %w", err)
	}

	// Allowed start-hour window for sessions, lower bound inclusive,
	// upper bound exclusive (defaults: 9 and 22)
	cfg.BookingHourStart, err = getEnvAsInt("BOOKING_HOUR_START", 9)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_HOUR_START: %w", err)
	}
	cfg.BookingHourEnd, err = getEnvAsInt("BOOKING_HOUR_END", 22)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_HOUR_END: %w", err)
	}

	// Artists may cancel a confirmed session up to this long before start
	cutoffStr := getEnv("CANCEL_CUTOFF", "24h")
	cutoff, err := time.ParseDuration(cutoffStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CANCEL_CUTOFF: %w", err)
	}
	cfg.CancelCutoff = cutoff

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}
