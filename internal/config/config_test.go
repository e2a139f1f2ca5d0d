package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.APIBaseURL != "http://localhost:8000/api" {
		t.Errorf("unexpected base URL %q", cfg.APIBaseURL)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Errorf("unexpected poll interval %v", cfg.PollInterval)
	}
	if cfg.LogMode != "prod" {
		t.Errorf("unexpected log mode %q", cfg.LogMode)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LEARNIX_API_URL", "http://backend:9000/api")
	t.Setenv("LEARNIX_LOG_MODE", "dev")
	t.Setenv("LEARNIX_USER_ID", "user-1")
	t.Setenv("LEARNIX_POLL_INTERVAL", "500ms")
	t.Setenv("LEARNIX_RELATED_WAIT", "45")

	cfg := Load()

	if cfg.APIBaseURL != "http://backend:9000/api" {
		t.Errorf("unexpected base URL %q", cfg.APIBaseURL)
	}
	if cfg.LogMode != "dev" {
		t.Errorf("unexpected log mode %q", cfg.LogMode)
	}
	if cfg.UserID != "user-1" {
		t.Errorf("unexpected user id %q", cfg.UserID)
	}
	if cfg.PollInterval != 500*time.Millisecond {
		t.Errorf("unexpected poll interval %v", cfg.PollInterval)
	}
	// Bare integers read as seconds.
	if cfg.RelatedQuestionsWait != 45*time.Second {
		t.Errorf("unexpected related wait %v", cfg.RelatedQuestionsWait)
	}
}

func TestLoad_IgnoresInvalidDuration(t *testing.T) {
	t.Setenv("LEARNIX_REQUEST_TIMEOUT", "soon")

	cfg := Load()
	if cfg.RequestTimeout != DefaultConfig().RequestTimeout {
		t.Errorf("expected default timeout, got %v", cfg.RequestTimeout)
	}
}
