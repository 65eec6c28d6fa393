package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse failed: %v", err)
	}
	cfg.Sanitize()

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q, want :8080", cfg.HTTP.Addr)
	}
	if cfg.Backend.BaseURL != "http://localhost:3000" {
		t.Errorf("Backend.BaseURL = %q, want http://localhost:3000", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 10*time.Second {
		t.Errorf("Backend.Timeout = %v, want 10s", cfg.Backend.Timeout)
	}
	if cfg.Redis.URI != "localhost:6379" {
		t.Errorf("Redis.URI = %q, want localhost:6379", cfg.Redis.URI)
	}
	if cfg.Auth.RefreshWindow != 5*time.Minute {
		t.Errorf("Auth.RefreshWindow = %v, want 5m", cfg.Auth.RefreshWindow)
	}
	if cfg.Observability.Metrics.IsEnabled() {
		t.Error("metrics should be disabled by default")
	}
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("FITPICK_API_BASE_URL", "https://api.fitpick.example.com/")
	t.Setenv("REDIS_URI", "redis.internal:6380")
	t.Setenv("AUTH_SESSION_TTL", "30m")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse failed: %v", err)
	}
	cfg.Sanitize()

	if cfg.Backend.BaseURL != "https://api.fitpick.example.com" {
		t.Errorf("Backend.BaseURL = %q, want trailing slash trimmed", cfg.Backend.BaseURL)
	}
	if cfg.Redis.URI != "redis.internal:6380" {
		t.Errorf("Redis.URI = %q", cfg.Redis.URI)
	}
	if cfg.Auth.SessionTTL != 30*time.Minute {
		t.Errorf("Auth.SessionTTL = %v, want 30m", cfg.Auth.SessionTTL)
	}
}

func TestAuthConfig_Sanitize(t *testing.T) {
	a := AuthConfig{SessionTTL: -1, RefreshWindow: -1}
	a.Sanitize()
	if a.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v, want 1h", a.SessionTTL)
	}
	if a.RefreshWindow != 5*time.Minute {
		t.Errorf("RefreshWindow = %v, want 5m", a.RefreshWindow)
	}

	// A refresh window as long as the session collapses to half of it.
	a = AuthConfig{SessionTTL: 10 * time.Minute, RefreshWindow: 10 * time.Minute}
	a.Sanitize()
	if a.RefreshWindow != 5*time.Minute {
		t.Errorf("RefreshWindow = %v, want half the session TTL", a.RefreshWindow)
	}
}

func TestBackendConfig_Sanitize(t *testing.T) {
	b := BackendConfig{BaseURL: "  https://api.fitpick.example.com//  ", Timeout: -1}
	b.Sanitize()
	if b.BaseURL != "https://api.fitpick.example.com" {
		t.Errorf("BaseURL = %q", b.BaseURL)
	}
	if b.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", b.Timeout)
	}
}

func TestDetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse failed: %v", err)
	}
	cfg.Sanitize()
	if !cfg.IsDev {
		t.Error("NODE_ENV=development should enable dev mode")
	}
	if cfg.Auth.CookieSecure {
		t.Error("dev mode should disable the Secure cookie attribute")
	}
}

func TestCookieSecureDefaultsOn(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse failed: %v", err)
	}
	cfg.Sanitize()
	if !cfg.Auth.CookieSecure {
		t.Error("Auth.CookieSecure should default to true outside dev mode")
	}
}
