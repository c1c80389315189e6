// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type AuthConfig struct {
	JWTSecret    string        `yaml:"jwt_secret"`
	SessionTTL   time.Duration `yaml:"session_ttl"`
	CookieDomain string        `yaml:"cookie_domain"`
	SecureCookie bool          `yaml:"secure_cookie"`
}

// SigningConfig controls the optional per-deployment sticker signature
// check. When Secret is empty the check is skipped entirely.
type SigningConfig struct {
	Secret          string `yaml:"secret"`
	SignatureLength int    `yaml:"signature_length"` // expected hex chars of the truncated HMAC
	// LegacyTruncation trusts the caller-supplied signature length and
	// truncates the expected digest to match before comparing. Kept only
	// for compatibility with codes printed by older seeding runs.
	LegacyTruncation bool `yaml:"legacy_truncation"`
}

type EventConfig struct {
	ID            string `yaml:"id"`
	StickerPrefix string `yaml:"sticker_prefix"`
}

type RateLimitConfig struct {
	ClaimAttempts int           `yaml:"claim_attempts"` // per window, per user
	ClaimWindow   time.Duration `yaml:"claim_window"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Signing   SigningConfig   `yaml:"signing"`
	Event     EventConfig     `yaml:"event"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 10 * time.Second
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 10 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Auth.SessionTTL <= 0 {
		cfg.Auth.SessionTTL = 24 * time.Hour
	}
	if cfg.Signing.SignatureLength <= 0 {
		cfg.Signing.SignatureLength = 16
	}
	if cfg.Event.ID == "" {
		cfg.Event.ID = "JAM-2025"
	}
	if cfg.Event.StickerPrefix == "" {
		cfg.Event.StickerPrefix = "JAM"
	}
	if cfg.RateLimit.ClaimAttempts <= 0 {
		cfg.RateLimit.ClaimAttempts = 10
	}
	if cfg.RateLimit.ClaimWindow <= 0 {
		cfg.RateLimit.ClaimWindow = time.Minute
	}

	// Minimal validation
	if cfg.Signing.SignatureLength > 64 {
		return nil, fmt.Errorf("signing.signature_length must not exceed 64 (hex sha256 digest), got %d", cfg.Signing.SignatureLength)
	}
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
