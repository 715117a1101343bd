package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultPort           = "8080"
	defaultJWTAccessTTL   = "24h"
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultHitPayBaseURL  = "https://api.sandbox.hit-pay.com/v1"
	defaultHitPayExpiry   = "15m"
	defaultGatewayTimeout = "10s"
	defaultCacheTTL       = "5m"
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	JWTSecret    string
	JWTAccessTTL time.Duration

	HitPayAPIKey     string
	HitPaySalt       string
	HitPayBaseURL    string
	HitPayWebhookURL string
	HitPayExpiry     time.Duration
	GatewayTimeout   time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = getEnv("PORT", defaultPort)
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	cfg.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	cfg.HitPayAPIKey = strings.TrimSpace(os.Getenv("HITPAY_API_KEY"))
	cfg.HitPaySalt = strings.TrimSpace(os.Getenv("HITPAY_SALT"))
	cfg.HitPayBaseURL = getEnv("HITPAY_BASE_URL", defaultHitPayBaseURL)
	cfg.HitPayWebhookURL = strings.TrimSpace(os.Getenv("HITPAY_WEBHOOK_URL"))

	var err error
	if cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL); err != nil {
		return nil, err
	}
	if cfg.HitPayExpiry, err = parseDurationEnv("HITPAY_EXPIRY", defaultHitPayExpiry); err != nil {
		return nil, err
	}
	if cfg.GatewayTimeout, err = parseDurationEnv("GATEWAY_TIMEOUT", defaultGatewayTimeout); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = parseDurationEnv("CACHE_TTL", defaultCacheTTL); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.GatewayTimeout <= 0 {
		return fmt.Errorf("GATEWAY_TIMEOUT must be > 0")
	}
	if isProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.HitPayAPIKey == "" || cfg.HitPaySalt == "" {
			return fmt.Errorf("in prod/release HITPAY_API_KEY and HITPAY_SALT must be set")
		}
		if cfg.HitPayWebhookURL == "" {
			return fmt.Errorf("in prod/release HITPAY_WEBHOOK_URL must be set")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
