package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every externally supplied setting. It is loaded once at
// startup and treated as immutable afterwards.
type Config struct {
	DatabaseURL string
	JWTSecret   []byte
	SessionTTL  time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	StreamAPIKey  string
	StreamBaseURL string

	BaseURL string
	Port    string
	Env     string

	ResetTokenTTL time.Duration
	RateLimitRPS  int
}

// Load reads the configuration from environment variables. Missing required
// variables are reported together so a misconfigured deploy fails fast with
// the full list.
func Load() (*Config, error) {
	cfg := &Config{}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	cfg.JWTSecret = []byte(secret)

	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	if cfg.SMTPHost == "" {
		missing = append(missing, "SMTP_HOST")
	}
	cfg.SMTPUsername = os.Getenv("SMTP_USERNAME")
	if cfg.SMTPUsername == "" {
		missing = append(missing, "SMTP_USERNAME")
	}
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	if cfg.SMTPPassword == "" {
		missing = append(missing, "SMTP_PASSWORD")
	}

	cfg.StreamAPIKey = os.Getenv("STREAM_API_KEY")
	if cfg.StreamAPIKey == "" {
		missing = append(missing, "STREAM_API_KEY")
	}

	cfg.BaseURL = os.Getenv("BASE_URL")
	if cfg.BaseURL == "" {
		missing = append(missing, "BASE_URL")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	cfg.SMTPPort = getEnvInt("SMTP_PORT", 587)
	cfg.SMTPFrom = getEnvString("SMTP_FROM", cfg.SMTPUsername)
	cfg.StreamBaseURL = getEnvString("STREAM_BASE_URL", "https://chat.stream-io-api.com")
	cfg.Port = getEnvString("PORT", "5001")
	cfg.Env = getEnvString("ENV", "development")
	cfg.SessionTTL = getEnvDuration("SESSION_TTL", 7*24*time.Hour)
	cfg.ResetTokenTTL = getEnvDuration("RESET_TOKEN_TTL", time.Hour)
	cfg.RateLimitRPS = getEnvInt("RATE_LIMIT_RPS", 10)

	return cfg, nil
}

// Production reports whether the service runs with production hardening
// (secure cookies) enabled.
func (c *Config) Production() bool {
	return c.Env == "production"
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
