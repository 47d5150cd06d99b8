package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.App.Port != "3000" {
		t.Errorf("port = %q, want 3000", cfg.App.Port)
	}
	if cfg.Auth.TokenTTL() != 24*time.Hour {
		t.Errorf("token ttl = %v, want 24h", cfg.Auth.TokenTTL())
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Errorf("bcrypt cost = %d, want 10", cfg.Auth.BcryptCost)
	}
	if cfg.Stories.TTL() != 24*time.Hour {
		t.Errorf("story ttl = %v, want 24h", cfg.Stories.TTL())
	}
	if cfg.Stories.ReaperEnabled {
		t.Error("reaper should be disabled by default")
	}
	if cfg.Media.Folder != "stories" {
		t.Errorf("folder = %q, want stories", cfg.Media.Folder)
	}
	if !cfg.RateLimit.Enabled {
		t.Error("rate limiting should be enabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8081")
	t.Setenv("DATABASE_URL", "postgres://example/db")
	t.Setenv("JWT_SECRET", "prod-secret")
	t.Setenv("AUTH_TOKEN_TTL_HOURS", "12")
	t.Setenv("STORIES_TTL_HOURS", "48")
	t.Setenv("STORIES_REAPER_ENABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.App.Addr() != "0.0.0.0:8081" {
		t.Errorf("addr = %q", cfg.App.Addr())
	}
	if cfg.Postgres.DSN != "postgres://example/db" {
		t.Errorf("dsn = %q", cfg.Postgres.DSN)
	}
	if cfg.Auth.JWTSecret != "prod-secret" {
		t.Errorf("secret = %q", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.TokenTTL() != 12*time.Hour {
		t.Errorf("token ttl = %v, want 12h", cfg.Auth.TokenTTL())
	}
	if cfg.Stories.TTL() != 48*time.Hour {
		t.Errorf("story ttl = %v, want 48h", cfg.Stories.TTL())
	}
	if !cfg.Stories.ReaperEnabled {
		t.Error("reaper should be enabled")
	}
}

func TestLoadRejectsInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid REDIS_DB")
	}
}

func TestDurationFallbacks(t *testing.T) {
	if (AppConfig{RequestTimeoutSeconds: 0}).RequestTimeout() != 0 {
		t.Error("zero timeout should disable the request timeout")
	}
	if (AuthConfig{TokenTTLHours: -1}).TokenTTL() != 24*time.Hour {
		t.Error("negative token ttl should fall back to 24h")
	}
	if (StoriesConfig{TTLHours: 0}).TTL() != 24*time.Hour {
		t.Error("zero story ttl should fall back to 24h")
	}
	if (StoriesConfig{ReaperIntervalMinutes: 0}).ReaperInterval() != time.Hour {
		t.Error("zero reaper interval should fall back to 1h")
	}
	if (MediaConfig{TimeoutSeconds: 0}).Timeout() != 30*time.Second {
		t.Error("zero media timeout should fall back to 30s")
	}
	if (RateLimitConfig{WindowSeconds: 0}).Window() != time.Minute {
		t.Error("zero window should fall back to 1m")
	}
}
