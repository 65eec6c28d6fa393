package bootstrap

import (
	"log/slog"
	"testing"
	"time"

	"github.com/fitpick/admin-gateway/config"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.AppConfig
		wantErr bool
	}{
		{
			name:    "nil config",
			wantErr: true,
		},
		{
			name: "missing backend base URL",
			cfg: &config.AppConfig{
				Redis: config.RedisConfig{URI: "localhost:6379"},
			},
			wantErr: true,
		},
		{
			name: "missing redis URI",
			cfg: &config.AppConfig{
				Backend: config.BackendConfig{BaseURL: "http://localhost:3000"},
			},
			wantErr: true,
		},
		{
			name: "complete",
			cfg: &config.AppConfig{
				Backend: config.BackendConfig{BaseURL: "http://localhost:3000"},
				Redis:   config.RedisConfig{URI: "localhost:6379"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsRedisURL(t *testing.T) {
	tests := []struct {
		uri  string
		want bool
	}{
		{"redis://localhost:6379", true},
		{"rediss://cache.example.com:6380", true},
		{"localhost:6379", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isRedisURL(tt.uri); got != tt.want {
			t.Fatalf("isRedisURL(%q) = %v, want %v", tt.uri, got, tt.want)
		}
	}
}

func TestNewServicesWiresCoreServices(t *testing.T) {
	cfg := &config.AppConfig{
		Backend: config.BackendConfig{
			BaseURL: "http://localhost:3000",
			Timeout: 10 * time.Second,
		},
		Auth: config.AuthConfig{
			SessionTTL:    time.Hour,
			RefreshWindow: 5 * time.Minute,
		},
	}

	services := NewServices(&ServiceDeps{
		Config: cfg,
		Logger: slog.New(slog.DiscardHandler),
	})

	if services.Auth == nil {
		t.Fatal("expected auth service to be wired")
	}
	if services.Backend == nil {
		t.Fatal("expected backend client to be wired")
	}
	if services.Scoped == nil {
		t.Fatal("expected scoped session tier to be wired")
	}
	if services.Metrics != nil {
		t.Fatal("expected metrics to be nil when observability is disabled")
	}
}
