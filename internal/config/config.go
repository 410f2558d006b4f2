// Package config builds the immutable runtime configuration for the service.
// It is constructed once in main and passed explicitly into every
// constructor that needs it; nothing reads the environment after startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultListenAddr    = ":8000"
	defaultDSN           = "file:classlog.db"
	defaultTokenTTL      = 30 * time.Minute
	defaultUploadDir     = "./uploads"
	defaultMaxUploadSize = 10 << 20 // 10MB
)

// Config holds every tunable the service needs. Values are fixed after Load.
type Config struct {
	ListenAddr    string
	DSN           string
	SigningSecret string
	TokenTTL      time.Duration
	UploadDir     string
	MaxUploadSize int64
	Environment   string
}

// Load reads an optional .env file and the process environment.
// A missing .env file is not an error; a missing signing secret is.
func Load() (Config, error) {
	_ = godotenv.Load()

	secret := getEnv("CLASSLOG_SECRET_KEY", "")
	if secret == "" {
		return Config{}, fmt.Errorf("config: CLASSLOG_SECRET_KEY is required")
	}

	ttl := defaultTokenTTL
	if raw := getEnv("CLASSLOG_TOKEN_TTL", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid CLASSLOG_TOKEN_TTL %q: %w", raw, err)
		}
		ttl = d
	}

	maxUpload := int64(defaultMaxUploadSize)
	if raw := getEnv("CLASSLOG_MAX_UPLOAD_SIZE", ""); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid CLASSLOG_MAX_UPLOAD_SIZE %q: %w", raw, err)
		}
		maxUpload = n
	}

	return Config{
		ListenAddr:    getEnv("CLASSLOG_LISTEN_ADDR", defaultListenAddr),
		DSN:           getEnv("CLASSLOG_DATABASE_DSN", defaultDSN),
		SigningSecret: secret,
		TokenTTL:      ttl,
		UploadDir:     getEnv("CLASSLOG_UPLOAD_DIR", defaultUploadDir),
		MaxUploadSize: maxUpload,
		Environment:   getEnv("CLASSLOG_ENVIRONMENT", "development"),
	}, nil
}

// GetSigningKey returns the token signing secret as a byte slice.
func (c Config) GetSigningKey() []byte {
	return []byte(c.SigningSecret)
}

// GetTokenTTL returns the session token lifetime.
func (c Config) GetTokenTTL() time.Duration {
	return c.TokenTTL
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
