package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries all runtime configuration, loaded from the environment
// (with an optional .env file for development).
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// DatabasePath is the local SQLite file holding the snapshot slot.
	DatabasePath string

	// CloudURL is the remote sync endpoint. Sync is disabled entirely
	// unless this has an http prefix.
	CloudURL string

	// SyncMinBusy is how long the sync busy indicator is held after a
	// push, so fast networks don't flicker it.
	SyncMinBusy time.Duration

	RedisURL     string
	KafkaBrokers []string
	SentryDSN    string
}

func LoadConfig() (*Config, error) {
	// Missing .env is fine; real env vars win either way.
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		LogLevel:     parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DatabasePath: getEnv("DATABASE_PATH", "learninghub.db"),
		CloudURL:     os.Getenv("CLOUD_URL"),
		SyncMinBusy:  1200 * time.Millisecond,
		RedisURL:     os.Getenv("REDIS_URL"),
		SentryDSN:    os.Getenv("SENTRY_DSN"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if cfg.DatabasePath == "" {
		return nil, fmt.Errorf("DATABASE_PATH must not be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
