package config

import (
	"strings"
	"testing"
	"time"
)

// setRequiredEnv sets the minimal environment LoadConfig needs.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "blog")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "blogdb")
	t.Setenv("SESSION_SECRET", "test-secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DB.Host != "localhost" || cfg.DB.Port != 5432 {
		t.Errorf("unexpected DB defaults: %s:%d", cfg.DB.Host, cfg.DB.Port)
	}
	if cfg.DB.MaxSize != 10 {
		t.Errorf("expected default pool size 10, got %d", cfg.DB.MaxSize)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("expected default session TTL 24h, got %s", cfg.Session.TTL)
	}
	if cfg.Session.CookieName != "blog_session" {
		t.Errorf("unexpected default cookie name: %q", cfg.Session.CookieName)
	}
	if cfg.Session.SecureCookie {
		t.Error("expected SecureCookie to default to false")
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("unexpected default port: %q", cfg.Server.Port)
	}
}

func TestLoadConfigCollectsMissingVariables(t *testing.T) {
	// Only one of the required variables set; the rest must all be reported.
	t.Setenv("DB_USER", "blog")

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("expected error for missing required variables")
	}
	for _, name := range []string{"DB_PASSWORD", "DB_NAME", "SESSION_SECRET"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("expected error to mention %s: %v", name, err)
		}
	}
}

func TestLoadConfigRejectsBadInt(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_PORT", "not-a-number")

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("expected error for invalid DB_PORT")
	}
	if !strings.Contains(err.Error(), "DB_PORT") {
		t.Errorf("expected error to mention DB_PORT: %v", err)
	}
}

func TestLoadConfigClampsPoolSize(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_POOL_SIZE", "500")

	// Clamping is reported as a config error so the operator notices.
	_, err := LoadConfig()
	if err == nil {
		t.Fatal("expected error for out-of-range pool size")
	}
	if !strings.Contains(err.Error(), "DB_POOL_SIZE") {
		t.Errorf("expected error to mention DB_POOL_SIZE: %v", err)
	}
}

func TestLoadConfigParsesDurations(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_TTL", "90m")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Session.TTL != 90*time.Minute {
		t.Errorf("expected 90m TTL, got %s", cfg.Session.TTL)
	}
}
