package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName     string
	HTTPPort        string
	PostgresDSN     string
	TrackingBaseURL string

	DBPingTimeout  time.Duration
	DBMaxOpenConns int
	DBMaxIdleConns int

	WorkerPollInterval time.Duration
	OutboxBatchSize    int
	ExpirerBatchSize   int

	EnableInvitationExpirer bool
	EnableOutboxRelay       bool
	EnableChangeFeed        bool
}

func Load() (Config, error) {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "meridian"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	trackingBase := strings.TrimSpace(os.Getenv("TRACKING_BASE_URL"))
	if trackingBase == "" {
		trackingBase = "https://go.meridian.app"
	}

	return Config{
		ServiceName:     service,
		HTTPPort:        port,
		PostgresDSN:     os.Getenv("POSTGRES_DSN"),
		TrackingBaseURL: trackingBase,

		DBPingTimeout:  envDuration("DB_PING_TIMEOUT", 5*time.Second),
		DBMaxOpenConns: envInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: envInt("DB_MAX_IDLE_CONNS", 5),

		WorkerPollInterval: envDuration("WORKER_POLL_INTERVAL", 5*time.Second),
		OutboxBatchSize:    envInt("OUTBOX_BATCH_SIZE", 100),
		ExpirerBatchSize:   envInt("EXPIRER_BATCH_SIZE", 50),

		EnableInvitationExpirer: envBool("ENABLE_INVITATION_EXPIRER", true),
		EnableOutboxRelay:       envBool("ENABLE_OUTBOX_RELAY", true),
		EnableChangeFeed:        envBool("ENABLE_CHANGE_FEED", true),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
