package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/fitpick/admin-gateway/internal/domain/model"
)

// StatsStaleness is how long a dashboard aggregate snapshot stays fresh.
// Inside the window reads are served from cache; the first read after it
// refetches from the platform.
const StatsStaleness = 60 * time.Second

// StatsSource fetches dashboard aggregates from the platform.
type StatsSource interface {
	Stats(ctx context.Context) (model.PlatformStats, error)
	Analytics(ctx context.Context) (model.Analytics, error)
}

// ByteCache is the small cache surface the dashboard needs. A miss returns
// (nil, nil).
type ByteCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	Source StatsSource
	// Cache is optional; without it every read hits the platform.
	Cache  ByteCache
	Logger *slog.Logger
}

// DashboardService serves platform aggregate counts and chart series with a
// fixed staleness window. Counts are always the platform's own aggregates;
// the gateway never estimates totals from page metadata.
type DashboardService struct {
	source StatsSource
	cache  ByteCache
	logger *slog.Logger
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	if opts.Source == nil {
		panic("Source is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{source: opts.Source, cache: opts.Cache, logger: logger}
}

// Stats returns the platform-wide entity counts.
func (s *DashboardService) Stats(ctx context.Context) (model.PlatformStats, error) {
	return cached(ctx, s, "stats", s.source.Stats)
}

// Analytics returns the dashboard chart series.
func (s *DashboardService) Analytics(ctx context.Context) (model.Analytics, error) {
	return cached(ctx, s, "analytics", s.source.Analytics)
}

// cached wraps a fetch with the staleness window. Cache failures degrade to
// a direct fetch rather than surfacing to the caller.
func cached[T any](ctx context.Context, s *DashboardService, key string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("dashboard cache read failed", "key", key, "error", err)
		} else if raw != nil {
			var out T
			if err := json.Unmarshal(raw, &out); err == nil {
				return out, nil
			}
			s.logger.Warn("dashboard cache entry corrupt, refetching", "key", key)
		}
	}

	out, err := fetch(ctx)
	if err != nil {
		return zero, fmt.Errorf("fetch %s: %w", key, err)
	}

	if s.cache != nil {
		raw, err := json.Marshal(out)
		if err == nil {
			if err := s.cache.Set(ctx, key, raw, StatsStaleness); err != nil {
				s.logger.Warn("dashboard cache write failed", "key", key, "error", err)
			}
		}
	}

	return out, nil
}
