package bootstrap

import (
	"log/slog"
	"net/http"

	"github.com/fitpick/admin-gateway/config"
	"github.com/fitpick/admin-gateway/internal/adapters/memstore"
	redisadapter "github.com/fitpick/admin-gateway/internal/adapters/redis"
	"github.com/fitpick/admin-gateway/internal/backend"
	"github.com/fitpick/admin-gateway/internal/observability/statsd"
	"github.com/fitpick/admin-gateway/internal/service"
	"github.com/redis/go-redis/v9"
)

// ServiceContainer holds the gateway's long-lived services.
type ServiceContainer struct {
	Auth    *service.AuthService
	Backend *backend.Client
	Cache   service.ByteCache
	// Scoped is the in-process session tier; the janitor sweeps it.
	Scoped  *memstore.SessionStore
	Metrics *statsd.Client
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires the backend client, the two session tiers, and the
// auth service from config and shared infrastructure.
func NewServices(deps *ServiceDeps) ServiceContainer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	metrics := buildMetrics(logger, cfg.Observability.Metrics)

	clientOpts := backend.ClientOptions{
		BaseURL:    cfg.Backend.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.Backend.Timeout},
		Logger:     logger,
	}
	if metrics != nil {
		clientOpts.Metrics = metrics
	}
	client := backend.NewClient(clientOpts)

	scoped := memstore.NewSessionStore()

	auth := service.NewAuthService(service.AuthServiceOptions{
		Authenticator: client.Auth(),
		Tiers: service.SessionTiers{
			Persistent: redisadapter.NewSessionStore(deps.RedisClient),
			Scoped:     scoped,
		},
		Remember:      redisadapter.NewRememberStore(deps.RedisClient),
		RefreshWindow: cfg.Auth.RefreshWindow,
		SessionTTL:    cfg.Auth.SessionTTL,
	})

	return ServiceContainer{
		Auth:    auth,
		Backend: client,
		Cache:   redisadapter.NewCache(deps.RedisClient, "fitpick:dashboard:"),
		Scoped:  scoped,
		Metrics: metrics,
	}
}

func buildMetrics(logger *slog.Logger, cfg config.ObservabilityMetricsConfig) *statsd.Client {
	if !cfg.IsEnabled() {
		return nil
	}
	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.StatsdAddress,
		Prefix:  "fitpick_gateway",
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return nil
	}
	return client
}
