package config

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

const (
	defaultIssuer            = "community"
	defaultAccessTTL         = "10m"
	defaultRefreshTTL        = "24h"
	defaultPendingRefreshTTL = "5m"
	defaultCookieSecure      = "false"
	defaultCookieSameSite    = "Lax"
	// base64url("change-me-jwt-secret-change-me-jwt-secret")
	defaultJWTSecret = "Y2hhbmdlLW1lLWp3dC1zZWNyZXQtY2hhbmdlLW1lLWp3dC1zZWNyZXQ"
)

// AuthConfig is loaded once at process start; the decoded signing key is
// immutable after that.
type AuthConfig struct {
	AppEnv            string
	Issuer            string
	SecretKey         []byte
	AccessTTL         time.Duration
	RefreshTTL        time.Duration
	PendingRefreshTTL time.Duration
	CookieSecure      bool
	CookieSameSite    string
}

func LoadAuthConfig() (*AuthConfig, error) {
	cfg := &AuthConfig{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Issuer = strings.TrimSpace(getEnv("JWT_ISSUER", defaultIssuer))

	rawSecret := strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	key, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(rawSecret, "="))
	if err != nil {
		return nil, fmt.Errorf("JWT_SECRET must be base64url-encoded: %w", err)
	}
	cfg.SecretKey = key

	cfg.AccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.RefreshTTL, err = parseDurationEnv("JWT_REFRESH_TTL", defaultRefreshTTL)
	if err != nil {
		return nil, err
	}
	cfg.PendingRefreshTTL, err = parseDurationEnv("JWT_PENDING_REFRESH_TTL", defaultPendingRefreshTTL)
	if err != nil {
		return nil, err
	}

	cfg.CookieSecure = parseBoolEnv("COOKIE_SECURE", defaultCookieSecure)
	cfg.CookieSameSite = strings.TrimSpace(getEnv("COOKIE_SAMESITE", defaultCookieSameSite))

	if err := validate(cfg); err != nil {
		return nil, err
	}

	log.Printf("auth config: issuer=%s accessTTL=%s refreshTTL=%s pendingTTL=%s cookieSecure=%t",
		cfg.Issuer, cfg.AccessTTL, cfg.RefreshTTL, cfg.PendingRefreshTTL, cfg.CookieSecure)

	return cfg, nil
}

func validate(cfg *AuthConfig) error {
	if len(cfg.SecretKey) < 32 {
		return fmt.Errorf("JWT_SECRET must decode to at least 32 bytes, got %d", len(cfg.SecretKey))
	}
	if cfg.Issuer == "" {
		return fmt.Errorf("JWT_ISSUER must not be empty")
	}
	if cfg.AccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.RefreshTTL <= 0 {
		return fmt.Errorf("JWT_REFRESH_TTL must be > 0")
	}
	if cfg.PendingRefreshTTL <= 0 {
		return fmt.Errorf("JWT_PENDING_REFRESH_TTL must be > 0")
	}

	sameSite := strings.ToLower(cfg.CookieSameSite)
	if sameSite != "lax" && sameSite != "none" && sameSite != "strict" {
		return fmt.Errorf("COOKIE_SAMESITE must be one of: Lax, None, Strict")
	}
	if sameSite == "none" && !cfg.CookieSecure {
		return fmt.Errorf("COOKIE_SECURE must be true when COOKIE_SAMESITE=None")
	}

	if isProdLike(cfg.AppEnv) {
		if strings.TrimSpace(getEnv("JWT_SECRET", "")) == "" || getEnv("JWT_SECRET", "") == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if !cfg.CookieSecure {
			return fmt.Errorf("in prod/release COOKIE_SECURE must be true")
		}
	}

	return nil
}

func isProdLike(env string) bool {
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

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
