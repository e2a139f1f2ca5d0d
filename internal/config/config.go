package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application-wide settings. Per-package configs (api, query)
// are derived from this in cmd wiring.
type Config struct {
	// APIBaseURL is the base URL of the content-generation backend,
	// including the /api prefix.
	APIBaseURL string

	// RequestTimeout bounds a single HTTP request to the backend.
	RequestTimeout time.Duration

	// SubmitTimeout bounds the whole submit-and-wait cycle for one query.
	SubmitTimeout time.Duration

	// PollInterval is the delay between content-status polls.
	PollInterval time.Duration

	// RelatedQuestionsWait is how long to keep waiting for related
	// questions after lessons are ready before giving up on them.
	RelatedQuestionsWait time.Duration

	// LogMode selects the zap config: "dev" or "prod".
	LogMode string

	// UserID is an optional identifier sent with query submissions.
	UserID string
}

// DefaultConfig returns a Config with sensible defaults for a locally
// running backend.
func DefaultConfig() Config {
	return Config{
		APIBaseURL:           "http://localhost:8000/api",
		RequestTimeout:       15 * time.Second,
		SubmitTimeout:        5 * time.Minute,
		PollInterval:         2 * time.Second,
		RelatedQuestionsWait: 30 * time.Second,
		LogMode:              "prod",
	}
}

// Load reads an optional .env file and builds a Config from LEARNIX_*
// environment variables, falling back to defaults for unset values.
func Load() Config {
	// Missing .env is fine; env vars may be set directly.
	_ = godotenv.Load(".env")

	cfg := DefaultConfig()

	if v := os.Getenv("LEARNIX_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("LEARNIX_LOG_MODE"); v != "" {
		cfg.LogMode = v
	}
	if v := os.Getenv("LEARNIX_USER_ID"); v != "" {
		cfg.UserID = v
	}
	if d, ok := envDuration("LEARNIX_REQUEST_TIMEOUT"); ok {
		cfg.RequestTimeout = d
	}
	if d, ok := envDuration("LEARNIX_SUBMIT_TIMEOUT"); ok {
		cfg.SubmitTimeout = d
	}
	if d, ok := envDuration("LEARNIX_POLL_INTERVAL"); ok {
		cfg.PollInterval = d
	}
	if d, ok := envDuration("LEARNIX_RELATED_WAIT"); ok {
		cfg.RelatedQuestionsWait = d
	}

	return cfg
}

// envDuration parses an env var as a duration. Bare integers are read as
// seconds.
func envDuration(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d, true
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, true
	}
	return 0, false
}
