package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.ContactRateLimit != 5 || cfg.ContactRateWindow != time.Hour {
		t.Errorf("expected contact limit 5/hour, got %d/%s", cfg.ContactRateLimit, cfg.ContactRateWindow)
	}
	if cfg.GlobalRateLimit != 100 || cfg.GlobalRateWindow != 15*time.Minute {
		t.Errorf("expected global limit 100/15m, got %d/%s", cfg.GlobalRateLimit, cfg.GlobalRateWindow)
	}
	if cfg.Timezone != "Asia/Kolkata" {
		t.Errorf("expected default timezone Asia/Kolkata, got %s", cfg.Timezone)
	}
	if cfg.AdminSecret != "" {
		t.Errorf("expected admin secret to default empty, got %q", cfg.AdminSecret)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CONTACT_RATE_LIMIT", "3")
	t.Setenv("CONTACT_RATE_WINDOW", "30m")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://secureit.example, https://www.secureit.example")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.ContactRateLimit != 3 {
		t.Errorf("expected contact limit 3, got %d", cfg.ContactRateLimit)
	}
	if cfg.ContactRateWindow != 30*time.Minute {
		t.Errorf("expected contact window 30m, got %s", cfg.ContactRateWindow)
	}
	if !cfg.RedisTLS {
		t.Error("expected RedisTLS true")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://www.secureit.example" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestGetEnvAsIntIgnoresGarbage(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")
	if cfg := Load(); cfg.SMTPPort != 587 {
		t.Errorf("expected fallback SMTP port 587, got %d", cfg.SMTPPort)
	}
}
