package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitpick/admin-gateway/config"
	"github.com/fitpick/admin-gateway/internal/adapters/memstore"
	httpx "github.com/fitpick/admin-gateway/internal/http"
	"golang.org/x/sync/errgroup"
)

// janitorInterval is how often the scoped session tier is swept for
// expired entries.
const janitorInterval = time.Minute

// GatewayConfig groups dependencies for running the gateway.
type GatewayConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// Run serves the gateway until the context is canceled or a SIGINT/SIGTERM
// arrives, then drains in-flight requests within the shutdown timeout.
func Run(ctx context.Context, cfg GatewayConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	handler := httpx.NewRouter(httpx.RouterServices{
		Auth:         cfg.Services.Auth,
		Backend:      cfg.Services.Backend,
		Cache:        cfg.Services.Cache,
		CookieDomain: appCfg.HTTP.CookieDomain,
		CookieSecure: appCfg.Auth.CookieSecure,
		Logger:       logger,
	})

	addr := appCfg.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  appCfg.HTTP.ReadTimeout,
		WriteTimeout: appCfg.HTTP.WriteTimeout,
		IdleTimeout:  2 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), appCfg.HTTP.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("HTTP server stopped")
		return nil
	})

	group.Go(func() error {
		return runScopedJanitor(gctx, cfg.Services.Scoped, logger)
	})

	return group.Wait()
}

// runScopedJanitor periodically sweeps expired sessions from the scoped
// in-process tier. The persistent tier expires keys in Redis on its own.
func runScopedJanitor(ctx context.Context, store *memstore.SessionStore, logger *slog.Logger) error {
	if store == nil {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if removed := store.PurgeExpired(); removed > 0 {
				logger.Debug("swept expired scoped sessions", "removed", removed)
			}
		}
	}
}
