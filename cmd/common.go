package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/iksnae/support-analytics/internal"
)

// loadConfig reads the config file and applies root flags on top
func loadConfig() (*internal.Config, error) {
	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if sourceName != "" {
		cfg.Source = sourceName
	}
	if strict {
		cfg.Strict = true
	}
	return cfg, nil
}

// dashboardEnv is everything a command needs to build dashboards
type dashboardEnv struct {
	cfg     *internal.Config
	src     internal.Source
	service *internal.DashboardService
}

func (e *dashboardEnv) Close() {
	if err := e.src.Close(); err != nil {
		internal.LogWarn("Failed to close source: %v", err)
	}
}

// openDashboardEnv connects to the configured source and wires the cache
func openDashboardEnv(ctx context.Context) (*dashboardEnv, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	// an unreachable store still gets the cached or empty dashboard
	src, err := internal.NewSource(ctx, cfg)
	var fetchErr *internal.FetchError
	switch {
	case errors.As(err, &fetchErr):
		internal.LogWarn("Cannot reach %s source: %v", cfg.Source, err)
		src = internal.NewUnreachableSource(cfg.Source, err)
	case err != nil:
		return nil, fmt.Errorf("failed to open %s source: %w", cfg.Source, err)
	}

	var cache *internal.CacheManager
	if cacheDir, err := cfg.ResolveCacheDir(); err != nil {
		internal.LogWarn("Cache disabled: %v", err)
	} else {
		cache = internal.NewCacheManager(cacheDir)
		if clearCache {
			if err := cache.ClearCache(); err != nil {
				internal.LogWarn("Failed to clear cache: %v", err)
			} else {
				internal.LogInfo("Cache cleared")
			}
		}
	}

	svc := internal.NewDashboardService(src, internal.LoadOptions{Strict: cfg.Strict}, cfg.FetchTimeout, cache, cfg.SourceKey())
	return &dashboardEnv{cfg: cfg, src: src, service: svc}, nil
}

// loadDashboard builds a dashboard behind a progress spinner. On a failed
// load it still returns the stale or empty dashboard alongside the error.
func loadDashboard(ctx context.Context, svc *internal.DashboardService, filter internal.StatusFilter) (*internal.Dashboard, error) {
	var d *internal.Dashboard
	err := internal.ShowProgress(ctx, fmt.Sprintf("Loading dashboard from %s", svc.SourceName()), func() error {
		var loadErr error
		d, loadErr = svc.Dashboard(ctx, filter)
		return loadErr
	})
	if d == nil {
		if err == nil {
			err = errors.New("no dashboard loaded")
		}
		return internal.EmptyDashboard(svc.SourceName(), filter), err
	}
	if err != nil && d.Stale {
		internal.PrintWarning(fmt.Sprintf("Could not refresh data, showing dashboard loaded %s", d.LoadedAt.Local().Format("2006-01-02 15:04")))
	}
	return d, err
}
