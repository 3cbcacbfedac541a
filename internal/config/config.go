package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nfrund/aprovados/internal/domain"
	"github.com/nfrund/aprovados/internal/submission"
)

// devSessionSecret is only accepted when APP_ENV is "development".
const devSessionSecret = "dev-only-session-secret-change-me"

// Provider is the read-only view of the configuration handed to modules.
type Provider interface {
	GetAppEnv() string
	GetAppAddr() string
	GetEndpoint() string
	GetSessionSecret() string
	GetPhotoMaxBytes() int64
	GetPhotoAllowedTypes() []string
	GetPhotoStagingDir() string
	GetResetDelay() time.Duration
	GetSubmitTimeout() time.Duration
	GetDraftMaxIdle() time.Duration
}

// Config holds all configuration for the application.
type Config struct {
	AppEnv            string
	AppAddr           string
	Endpoint          string
	SessionSecret     string
	PhotoMaxBytes     int64
	PhotoAllowedTypes []string
	PhotoStagingDir   string
	ResetDelay        time.Duration
	SubmitTimeout     time.Duration
	DraftMaxIdle      time.Duration
}

// New loads configuration from a .env file, if present, and the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		AppEnv:            valueOr(getenv("APP_ENV"), "development"),
		AppAddr:           valueOr(getenv("APP_ADDR"), ":3000"),
		Endpoint:          valueOr(getenv("APROVADOS_ENDPOINT"), submission.DefaultEndpoint),
		SessionSecret:     getenv("SESSION_SECRET"),
		PhotoMaxBytes:     domain.DefaultMaxPhotoBytes,
		PhotoAllowedTypes: domain.DefaultPhotoTypes,
		PhotoStagingDir:   getenv("PHOTO_STAGING_DIR"),
		ResetDelay:        3 * time.Second,
		SubmitTimeout:     30 * time.Second,
		DraftMaxIdle:      time.Hour,
	}

	if v := getenv("PHOTO_MAX_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid PHOTO_MAX_BYTES %q", v)
		}
		cfg.PhotoMaxBytes = n
	}
	if v := getenv("PHOTO_ALLOWED_TYPES"); v != "" {
		cfg.PhotoAllowedTypes = splitList(v)
	}

	var err error
	if cfg.ResetDelay, err = durationOr(getenv, "RESET_DELAY", cfg.ResetDelay, false); err != nil {
		return nil, err
	}
	if cfg.SubmitTimeout, err = durationOr(getenv, "SUBMIT_TIMEOUT", cfg.SubmitTimeout, false); err != nil {
		return nil, err
	}
	// A zero DRAFT_MAX_IDLE turns idle draft pruning off.
	if cfg.DraftMaxIdle, err = durationOr(getenv, "DRAFT_MAX_IDLE", cfg.DraftMaxIdle, true); err != nil {
		return nil, err
	}

	if cfg.SessionSecret == "" {
		if cfg.AppEnv != "development" {
			return nil, fmt.Errorf("required environment variable SESSION_SECRET is not set")
		}
		cfg.SessionSecret = devSessionSecret
	}

	return cfg, nil
}

func (c *Config) GetAppEnv() string               { return c.AppEnv }
func (c *Config) GetAppAddr() string              { return c.AppAddr }
func (c *Config) GetEndpoint() string             { return c.Endpoint }
func (c *Config) GetSessionSecret() string        { return c.SessionSecret }
func (c *Config) GetPhotoMaxBytes() int64         { return c.PhotoMaxBytes }
func (c *Config) GetPhotoAllowedTypes() []string  { return c.PhotoAllowedTypes }
func (c *Config) GetPhotoStagingDir() string      { return c.PhotoStagingDir }
func (c *Config) GetResetDelay() time.Duration    { return c.ResetDelay }
func (c *Config) GetSubmitTimeout() time.Duration { return c.SubmitTimeout }
func (c *Config) GetDraftMaxIdle() time.Duration  { return c.DraftMaxIdle }

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// durationOr parses key as a duration. Negative values are always rejected,
// zero only when allowZero is false.
func durationOr(getenv func(string) string, key string, fallback time.Duration, allowZero bool) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 || (d == 0 && !allowZero) {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
