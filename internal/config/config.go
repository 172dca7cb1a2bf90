package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Storage
	PostgresURL   string
	RedisURL      string
	ClickHouseURL string // optional; empty disables the analytics sink

	// Sports data provider
	SportsAPIURL   string
	SportsAPIKey   string
	FetchTimeout   time.Duration
	RecentFormSize int

	// Model gateway
	GatewayURL         string
	GatewayKey         string
	GatewayModel       string
	GatewayMaxTokens   int
	GatewayTemperature float64
	GatewayTimeout     time.Duration

	// Analyst pipeline
	HistoryWindow     int
	ContextCharBudget int

	// Learning worker
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
}

// Load loads configuration from environment variables.
// It returns an error if critical configuration is missing.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		ClickHouseURL: getEnv("CLICKHOUSE_URL", ""),

		FetchTimeout:   getEnvDuration("FETCH_TIMEOUT", 8*time.Second),
		RecentFormSize: getEnvInt("RECENT_FORM_SIZE", 5),

		GatewayURL:         getEnv("MODEL_GATEWAY_URL", ""),
		GatewayKey:         getEnv("MODEL_GATEWAY_KEY", ""),
		GatewayModel:       getEnv("MODEL_GATEWAY_MODEL", "gpt-4o-mini"),
		GatewayMaxTokens:   getEnvInt("MODEL_GATEWAY_MAX_TOKENS", 600),
		GatewayTemperature: getEnvFloat("MODEL_GATEWAY_TEMPERATURE", 0.7),
		GatewayTimeout:     getEnvDuration("MODEL_GATEWAY_TIMEOUT", 20*time.Second),

		HistoryWindow:     getEnvInt("HISTORY_WINDOW", 12),
		ContextCharBudget: getEnvInt("CONTEXT_CHAR_BUDGET", 4000),

		WorkerCount:   getEnvInt("WORKER_COUNT", 4),
		QueueSize:     getEnvInt("QUEUE_SIZE", 2000),
		BatchSize:     getEnvInt("BATCH_SIZE", 100),
		FlushInterval: getEnvDuration("FLUSH_INTERVAL", 2*time.Second),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	// Critical configuration - fail if missing
	var err error
	if cfg.PostgresURL, err = getEnvRequired("POSTGRES_URL"); err != nil {
		return nil, err
	}
	if cfg.RedisURL, err = getEnvRequired("REDIS_URL"); err != nil {
		return nil, err
	}
	if cfg.SportsAPIURL, err = getEnvRequired("SPORTS_API_URL"); err != nil {
		return nil, err
	}
	if cfg.SportsAPIKey, err = getEnvRequired("SPORTS_API_KEY"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
