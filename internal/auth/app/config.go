package app

import (
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/matchday/internal/auth/service"
	"github.com/aussiebroadwan/matchday/pkg/jwtx"
	"github.com/joho/godotenv"
)

const DefaultIssuer = "matchday-auth"

type Config struct {
	Issuer               string        // issuer claim for tokens (default: matchday-auth)
	AccessTTL            time.Duration // session token lifetime (default: 15m)
	RefreshGrace         time.Duration // how long after expiry a token may still be refreshed (default: 24h)
	NumKeys              int           // ephemeral signing keys to generate (default: 3, max: 10)
	SigningKeyFile       string        // Optional: PEM Ed25519 key, created on first run; ephemeral keys when empty
	DatabaseFile         string        // path to SQLite database file (default: ./auth.db)
	PepperFile           string        // path to file containing pepper for password hashing (default: ./pepper)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

// LoadConfig reads the environment, after loading a .env file from the
// working directory when there is one.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		Issuer:               getEnvOrDefault("AUTH_ISSUER", DefaultIssuer),
		AccessTTL:            getEnvDurationOrDefault("AUTH_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshGrace:         getEnvDurationOrDefault("AUTH_REFRESH_GRACE", service.DefaultRefreshGrace),
		NumKeys:              getEnvIntOrDefault("AUTH_NUM_KEYS", 0),
		SigningKeyFile:       os.Getenv("AUTH_SIGNING_KEY_FILE"),
		DatabaseFile:         getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		PepperFile:           getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
